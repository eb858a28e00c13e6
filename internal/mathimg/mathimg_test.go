/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package mathimg

import "testing"

func TestRenderSizesToExpression(t *testing.T) {
	short, err := Render(`x`)
	if err != nil {
		t.Fatal(err)
	}
	long, err := Render(`\sum_{i=0}^{n} x_i^2`)
	if err != nil {
		t.Fatal(err)
	}
	if long.Bounds().Dx() <= short.Bounds().Dx() {
		t.Fatalf("longer expression not wider: %d vs %d",
			long.Bounds().Dx(), short.Bounds().Dx())
	}
}

func TestRenderEmptyFails(t *testing.T) {
	if _, err := Render("   "); err == nil {
		t.Fatal("empty expression accepted")
	}
}

func TestRenderBackgroundIsOpaque(t *testing.T) {
	img, err := Render(`a+b`)
	if err != nil {
		t.Fatal(err)
	}
	c := img.RGBAAt(1, 1)
	if c.A != 255 || c.R != 255 {
		t.Fatalf("corner pixel: %+v", c)
	}
}
