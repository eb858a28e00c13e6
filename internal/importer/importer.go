/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package importer normalizes heterogeneous upstream document content into
// slide descriptors. The upstream AI service returns one of: an array of
// slide-like objects, an object with a slides array, an object with sections,
// a single object, or delimited plain text. Each variant has its own
// normalization path; unrecognized shapes degrade to a single descriptor
// rather than failing.
package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"quantumdeck/internal/domain"
)

var (
	slideMarkerRe = regexp.MustCompile(`(?i)slide\s+\d+\s*:`)
	imageMarkRe   = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
	optionRe      = regexp.MustCompile(`[A-D]\)`)
)

// ParseJSON decodes a raw content payload and dispatches on its shape.
// Payloads that are not valid JSON are treated as plain text.
func ParseJSON(data []byte) []domain.SlideDescriptor {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return ParseText(trimmed)
	}
	return Parse(v)
}

// Parse normalizes an already-decoded content value into descriptors.
// An empty/absent value yields zero descriptors; the caller must leave the
// existing deck untouched in that case.
func Parse(v any) []domain.SlideDescriptor {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return ParseText(t)
	case []any:
		out := make([]domain.SlideDescriptor, 0, len(t))
		for _, item := range t {
			out = append(out, normalizeItem(item))
		}
		return out
	case map[string]any:
		if slides, ok := t["slides"].([]any); ok {
			out := make([]domain.SlideDescriptor, 0, len(slides))
			for _, item := range slides {
				out = append(out, normalizeItem(item))
			}
			return out
		}
		if sections, ok := t["sections"].([]any); ok {
			out := make([]domain.SlideDescriptor, 0, len(sections))
			for _, item := range sections {
				out = append(out, normalizeItem(item))
			}
			return out
		}
		return []domain.SlideDescriptor{normalizeMap(t)}
	default:
		// Unrecognized scalar: one descriptor carrying its rendering.
		return []domain.SlideDescriptor{{Title: fmt.Sprint(t)}}
	}
}

// ParseText splits delimited plain text on case-insensitive "Slide N:"
// markers and normalizes each block. Text without markers is one block.
func ParseText(s string) []domain.SlideDescriptor {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var blocks []string
	locs := slideMarkerRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		blocks = []string{s}
	} else {
		if pre := strings.TrimSpace(s[:locs[0][0]]); pre != "" {
			blocks = append(blocks, pre)
		}
		for i, loc := range locs {
			start := loc[1]
			end := len(s)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			blocks = append(blocks, s[start:end])
		}
	}
	var out []domain.SlideDescriptor
	for _, b := range blocks {
		d := parseBlock(b)
		if d.Title == "" && d.Body == "" && len(d.Bullets) == 0 && len(d.Images) == 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// parseBlock extracts images, title, body and multiple-choice options from
// one slide's worth of text.
func parseBlock(block string) domain.SlideDescriptor {
	var d domain.SlideDescriptor

	for _, m := range imageMarkRe.FindAllStringSubmatch(block, -1) {
		if url := strings.TrimSpace(m[1]); url != "" {
			d.Images = append(d.Images, url)
		}
	}
	block = imageMarkRe.ReplaceAllString(block, "")

	lines := strings.Split(block, "\n")
	var rest []string
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if d.Title == "" {
			d.Title = strings.TrimSpace(line)
			rest = lines[i+1:]
			break
		}
	}
	body := strings.TrimSpace(strings.Join(rest, "\n"))

	// Options labeled A) through D) become bullets; the text before the
	// first label stays as body.
	if locs := optionRe.FindAllStringIndex(body, -1); len(locs) > 0 {
		d.Body = strings.TrimSpace(body[:locs[0][0]])
		for i, loc := range locs {
			end := len(body)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			if opt := strings.TrimSpace(body[loc[0]:end]); opt != "" {
				d.Bullets = append(d.Bullets, opt)
			}
		}
	} else {
		d.Body = body
	}
	return d
}

// normalizeItem handles one element of a slides/sections array.
func normalizeItem(v any) domain.SlideDescriptor {
	switch t := v.(type) {
	case string:
		return parseBlock(t)
	case map[string]any:
		return normalizeMap(t)
	default:
		return domain.SlideDescriptor{Title: fmt.Sprint(t)}
	}
}

// normalizeMap applies the permissive field fallbacks: heading maps to
// title; text, content and description map to body; points and items map to
// bullets.
func normalizeMap(m map[string]any) domain.SlideDescriptor {
	var d domain.SlideDescriptor
	d.Title = firstString(m, "title", "heading")
	d.Body = firstString(m, "body", "text", "content", "description")
	d.Background = firstString(m, "background", "bgColor")
	for _, key := range []string{"bullets", "points", "items"} {
		if arr, ok := m[key].([]any); ok {
			for _, item := range arr {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					d.Bullets = append(d.Bullets, strings.TrimSpace(s))
				}
			}
			break
		}
	}
	if arr, ok := m["images"].([]any); ok {
		for _, item := range arr {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				d.Images = append(d.Images, strings.TrimSpace(s))
			}
		}
	}
	return d
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
