/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package preview

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasics(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("# Heading\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<em>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
}

func TestRenderMathProducesMathML(t *testing.T) {
	r := NewRenderer()
	out, err := r.RenderMath(`x^2 + y^2 = z^2`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<math") {
		t.Fatalf("no MathML in output: %q", out)
	}
}

func TestRenderInlineMath(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(`The identity $e^{i\pi} + 1 = 0$ holds.`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<math") {
		t.Fatalf("inline math not converted: %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("table extension inactive: %q", out)
	}
}
