package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestParseVec(t *testing.T) {
	tests := []struct {
		in      string
		want    v3.Vec
		wantErr bool
	}{
		{"1,2,3", v3.Vec{X: 1, Y: 2, Z: 3}, false},
		{" -1.5 , 0, 2e1 ", v3.Vec{X: -1.5, Z: 20}, false},
		{"1,2", v3.Vec{}, true},
		{"1,2,3,4", v3.Vec{}, true},
		{"a,b,c", v3.Vec{}, true},
		{"", v3.Vec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseVec(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRay(t *testing.T) {
	r, err := parseRay("0,0,-10:0,0,1")
	if err != nil {
		t.Fatalf("parseRay: %v", err)
	}
	if r.Origin != (v3.Vec{Z: -10}) || r.Direction != (v3.Vec{Z: 1}) {
		t.Errorf("unexpected ray %+v", r)
	}

	for _, in := range []string{"0,0,0", "0,0:0,0,1", "0,0,0:1,1", "0,0,0:0,0,0"} {
		if _, err := parseRay(in); err == nil {
			t.Errorf("parseRay(%q) should fail", in)
		}
	}
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--config", "",
		"--distance", "0,0,0",
		"--ray", "0,0,-10:0,0,1",
		"examples/pill.matth",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}

	var res Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not a JSON result: %v\n%s", err, out.String())
	}
	if res.Distance == nil || res.Distance.Distance != -5 {
		t.Errorf("unexpected distance %+v", res.Distance)
	}
	if res.Raycast == nil || len(res.Raycast.Hits) != 2 {
		t.Errorf("unexpected raycast %+v", res.Raycast)
	}
	if !strings.Contains(out.String(), `"kind": "enter"`) {
		t.Errorf("expected hit kinds to be written as text:\n%s", out.String())
	}
}

func TestRootCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no script", []string{}},
		{"bad distance", []string{"--distance", "1,2", "examples/pill.matth"}},
		{"bad ray", []string{"--ray", "1,2,3", "examples/pill.matth"}},
		{"missing script", []string{"examples/nope.matth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Errorf("expected an error for %v", tt.args)
			}
		})
	}
}
