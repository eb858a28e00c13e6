/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"quantumdeck/internal/domain"
	"quantumdeck/internal/storage"
)

// OOXML unit conversions. Canvas pixels are mapped through CSS inches
// (96 px per inch) to EMUs (914400 per inch); font pixel sizes map to
// points at 0.75 pt per px, stored in hundredths.
const (
	pxPerInch  = 96
	emuPerInch = 914400
	emuPerPx   = emuPerInch / pxPerInch

	// 16:9 deck at 12192000 x 6858000 EMU (13.33 x 7.5 in).
	slideCx = 12192000
	slideCy = 6858000
)

// PxToEMU converts canvas pixels to EMUs.
func PxToEMU(px float64) int {
	return int(math.Round(px * emuPerPx))
}

// FontSizeHundredths converts a pixel font size to OOXML hundredths of a
// point.
func FontSizeHundredths(px float64) int {
	return int(math.Round(px * 0.75 * 100))
}

// PPTXOptions controls PowerPoint export.
type PPTXOptions struct {
	// Slides selects deck indices; empty means all, honored in deck order.
	Slides []int
	// Title is stored in the document properties.
	Title string
}

// ExportDeckPPTX writes the selected slides of a workspace deck to a PPTX
// package at outPath. Relative paths resolve under the workspace exports
// directory.
func ExportDeckPPTX(h *storage.DeckHandle, outPath string, opt PPTXOptions) error {
	if h == nil {
		return fmt.Errorf("deck handle is nil")
	}
	return WritePPTX(h.Deck, resolveOutPath(h, outPath), opt)
}

// WritePPTX writes the selected slides to a PPTX package at outPath. Text,
// rectangles and ellipses are carried as native shapes with font and fill
// attributes intact; embedded images become media parts. Remote image URLs
// cannot be packaged and are skipped.
func WritePPTX(deck domain.Deck, outPath string, opt PPTXOptions) error {
	indexes := slideIndexes(len(deck.Slides), opt.Slides)
	if len(indexes) == 0 {
		return fmt.Errorf("no slides selected")
	}
	title := opt.Title
	if title == "" {
		title = "QuantumDeck Presentation"
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create pptx: %w", err)
	}
	zw := zip.NewWriter(f)

	fail := func(err error) error {
		zw.Close()
		f.Close()
		os.Remove(tmp)
		return err
	}
	add := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
		return nil
	}

	var mediaCount int
	type slidePart struct {
		xml  string
		rels string
	}
	parts := make([]slidePart, 0, len(indexes))
	media := make(map[string][]byte)

	for _, i := range indexes {
		xml, rels, m, err := buildSlideXML(deck.Slides[i], &mediaCount)
		if err != nil {
			return fail(fmt.Errorf("slide %d: %w", i+1, err))
		}
		for name, data := range m {
			media[name] = data
		}
		parts = append(parts, slidePart{xml: xml, rels: rels})
	}

	if err := add("[Content_Types].xml", contentTypesXML(len(parts), media)); err != nil {
		return fail(err)
	}
	if err := add("_rels/.rels", rootRelsXML); err != nil {
		return fail(err)
	}
	if err := add("docProps/core.xml", corePropsXML(title)); err != nil {
		return fail(err)
	}
	if err := add("docProps/app.xml", appPropsXML(len(parts))); err != nil {
		return fail(err)
	}
	if err := add("ppt/presentation.xml", presentationXML(len(parts))); err != nil {
		return fail(err)
	}
	if err := add("ppt/_rels/presentation.xml.rels", presentationRelsXML(len(parts))); err != nil {
		return fail(err)
	}
	if err := add("ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return fail(err)
	}
	if err := add("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML); err != nil {
		return fail(err)
	}
	if err := add("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return fail(err)
	}
	if err := add("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML); err != nil {
		return fail(err)
	}
	if err := add("ppt/theme/theme1.xml", themeXML); err != nil {
		return fail(err)
	}
	for n, p := range parts {
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", n+1), p.xml); err != nil {
			return fail(err)
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n+1), p.rels); err != nil {
			return fail(err)
		}
	}
	for name, data := range media {
		w, err := zw.Create("ppt/media/" + name)
		if err != nil {
			return fail(fmt.Errorf("create media %s: %w", name, err))
		}
		if _, err := w.Write(data); err != nil {
			return fail(fmt.Errorf("write media %s: %w", name, err))
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("finalize pptx: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close pptx: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize pptx: %w", err)
	}
	return nil
}

// buildSlideXML emits one slide part plus its relationships and media.
func buildSlideXML(s domain.Slide, mediaCount *int) (string, string, map[string][]byte, error) {
	var shapes strings.Builder
	var rels strings.Builder
	media := make(map[string][]byte)

	rels.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	relID := 1
	shapeID := 1

	for i := range s.Objects {
		o := &s.Objects[i]
		shapeID++
		switch o.Kind {
		case domain.KindText:
			shapes.WriteString(textShapeXML(o, shapeID))
		case domain.KindRect:
			shapes.WriteString(geomShapeXML(o, shapeID, "rect"))
		case domain.KindEllipse:
			shapes.WriteString(geomShapeXML(o, shapeID, "ellipse"))
		case domain.KindImage, domain.KindDrawing:
			data, ext, err := decodeMediaURI(o.Content)
			if err != nil {
				return "", "", nil, fmt.Errorf("object %s: %w", o.ID, err)
			}
			if data == nil {
				continue // remote URL, nothing to package
			}
			*mediaCount++
			name := fmt.Sprintf("image%d.%s", *mediaCount, ext)
			media[name] = data
			relID++
			rid := fmt.Sprintf("rId%d", relID)
			fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, rid, name)
			shapes.WriteString(picXML(o, shapeID, rid))
		}
	}

	var bg string
	if c, err := domain.ParseHexColor(s.Background); err == nil {
		bg = fmt.Sprintf(`<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, hexUpper(c))
	}

	slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld>` + bg +
		`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		shapes.String() +
		`</p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sld>`

	relXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		rels.String() + `</Relationships>`
	return slide, relXML, media, nil
}

// xfrmXML emits position and extent with effective scale folded into the
// extent, plus rotation in 60000ths of a degree.
func xfrmXML(o *domain.SceneObject) string {
	sx, sy := o.ScaleX, o.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	rot := ""
	if o.Rotation != 0 {
		rot = fmt.Sprintf(` rot="%d"`, int(math.Round(o.Rotation*60000)))
	}
	return fmt.Sprintf(`<a:xfrm%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		rot, PxToEMU(o.X), PxToEMU(o.Y), PxToEMU(o.Width*sx), PxToEMU(o.Height*sy))
}

func textShapeXML(o *domain.SceneObject, id int) string {
	c, err := domain.ParseHexColor(o.Fill)
	if err != nil {
		c = domain.Color{A: 255}
	}
	attrs := fmt.Sprintf(` sz="%d"`, FontSizeHundredths(o.FontSizePx))
	if o.Bold {
		attrs += ` b="1"`
	}
	if o.Italic {
		attrs += ` i="1"`
	}
	if o.Underline {
		attrs += ` u="sng"`
	}
	family := o.FontFamily
	if family == "" {
		family = domain.DefaultFontFamily
	}
	algn := "l"
	switch o.Align {
	case domain.AlignCenter:
		algn = "ctr"
	case domain.AlignRight:
		algn = "r"
	}

	var paras strings.Builder
	for _, line := range strings.Split(o.Content, "\n") {
		fmt.Fprintf(&paras,
			`<a:p><a:pPr algn="%s"/><a:r><a:rPr lang="en-US"%s dirty="0"><a:solidFill>%s</a:solidFill><a:latin typeface="%s"/></a:rPr><a:t>%s</a:t></a:r></a:p>`,
			algn, attrs, srgbClrXML(c, o.Opacity), xmlEscape(family), xmlEscape(line))
	}

	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square" rtlCol="0"/><a:lstStyle/>%s</p:txBody></p:sp>`,
		id, id, xfrmXML(o), paras.String())
}

func geomShapeXML(o *domain.SceneObject, id int, prst string) string {
	c, err := domain.ParseHexColor(o.Fill)
	if err != nil {
		c = domain.Color{A: 255}
	}
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr>%s<a:prstGeom prst="%s"><a:avLst/></a:prstGeom><a:solidFill>%s</a:solidFill></p:spPr>`+
			`<p:txBody><a:bodyPr rtlCol="0" anchor="ctr"/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
		id, id, xfrmXML(o), prst, srgbClrXML(c, o.Opacity))
}

func picXML(o *domain.SceneObject, id int, rid string) string {
	return fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, id, rid, xfrmXML(o))
}

// srgbClrXML renders a solid color, adding an alpha child when the object
// is translucent. Alpha is in thousandths of a percent.
func srgbClrXML(c domain.Color, opacity float64) string {
	opacity = domain.Clamp01(opacity)
	if opacity >= 1 {
		return fmt.Sprintf(`<a:srgbClr val="%s"/>`, hexUpper(c))
	}
	return fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`,
		hexUpper(c), int(math.Round(opacity*100000)))
}

func hexUpper(c domain.Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// decodeMediaURI extracts raw bytes and a file extension from a data URI.
// Remote URLs return (nil, "", nil).
func decodeMediaURI(content string) ([]byte, string, error) {
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		return nil, "", nil
	}
	idx := strings.Index(content, "base64,")
	if !strings.HasPrefix(content, "data:") || idx < 0 {
		return nil, "", fmt.Errorf("unsupported image content")
	}
	ext := "png"
	switch {
	case strings.HasPrefix(content, "data:image/jpeg"), strings.HasPrefix(content, "data:image/jpg"):
		ext = "jpeg"
	case strings.HasPrefix(content, "data:image/gif"):
		ext = "gif"
	}
	raw, err := base64.StdEncoding.DecodeString(content[idx+len("base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("decode image data: %w", err)
	}
	return raw, ext, nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;",
)

func xmlEscape(s string) string { return xmlEscaper.Replace(s) }

func contentTypesXML(slides int, media map[string][]byte) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/></Relationships>`

func corePropsXML(title string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>` +
		xmlEscape(title) + `</dc:title><dc:creator>QuantumDeck</dc:creator></cp:coreProperties>`
}

func appPropsXML(slides int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"><Application>QuantumDeck</Application><Slides>%d</Slides></Properties>`, slides)
}

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i+1)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/>`, slideCx, slideCy, slideCy, slideCx)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slides int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+1, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const slideMasterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const slideMasterRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const slideLayoutXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank"><p:cSld name="Blank"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

const themeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"><a:themeElements><a:clrScheme name="Office"><a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2><a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2><a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4><a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6><a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink></a:clrScheme><a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="Office"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
