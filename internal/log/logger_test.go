/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("QD_LOG_LEVEL", "")
	t.Setenv("QD_LOG_FORMAT", "")
	t.Setenv("QD_LOG_SOURCE", "")
	t.Setenv("QD_LOG_FILE", "")
	o := FromEnv()
	if o.Level != "info" || o.Format != "console" || o.AddSource || o.File != "" {
		t.Fatalf("defaults wrong: %+v", o)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QD_LOG_LEVEL", "debug")
	t.Setenv("QD_LOG_FORMAT", "json")
	t.Setenv("QD_LOG_SOURCE", "true")
	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || !o.AddSource {
		t.Fatalf("env overrides not applied: %+v", o)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestPrettyHandlerWritesAttrs(t *testing.T) {
	var sb strings.Builder
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo}, w: &sb}
	l := slog.New(h).With(slog.String("component", "canvas"))
	l.Info("object added", slog.String("kind", "rect"))
	out := sb.String()
	if !strings.Contains(out, "INF object added") {
		t.Fatalf("missing level/message: %q", out)
	}
	if !strings.Contains(out, "component=canvas") || !strings.Contains(out, "kind=rect") {
		t.Fatalf("missing attrs: %q", out)
	}
}

func TestPrettyHandlerLevelGate(t *testing.T) {
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error gated at warn level")
	}
}

func TestWithComponentAndOperation(t *testing.T) {
	l := WithOperation(WithComponent("export"), "pdf")
	if l == nil {
		t.Fatal("nil logger")
	}
}
