// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdfgen writes a sample PDF document.  The document exercises fonts,
// images, shadings, links, bookmarks and metadata, and can be written
// with object streams, encryption, or for one of the conformance
// profiles.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/action"
	"github.com/apache/xmlgraphics-fop-sub006/annotation"
	"github.com/apache/xmlgraphics-fop-sub006/color"
	"github.com/apache/xmlgraphics-fop-sub006/destination"
	"github.com/apache/xmlgraphics-fop-sub006/fontfile"
	"github.com/apache/xmlgraphics-fop-sub006/function"
	"github.com/apache/xmlgraphics-fop-sub006/gstate"
	"github.com/apache/xmlgraphics-fop-sub006/image"
	"github.com/apache/xmlgraphics-fop-sub006/metadata"
	"github.com/apache/xmlgraphics-fop-sub006/outline"
	"github.com/apache/xmlgraphics-fop-sub006/shading"
	"github.com/apache/xmlgraphics-fop-sub006/structure"
)

var profiles = map[string]pdf.Profile{
	"":        pdf.ProfileNone,
	"pdfa-1b": pdf.ProfilePDFA1b,
	"pdfa-2b": pdf.ProfilePDFA2b,
	"pdfx-3":  pdf.ProfilePDFX3,
	"pdfua-1": pdf.ProfilePDFUA1,
}

var a4 = rect.Rect{URx: 595, URy: 842}

func main() {
	out := flag.String("o", "sample.pdf", "output file name")
	version := flag.String("version", "", "PDF version, e.g. 1.7")
	profileName := flag.String("profile", "", "conformance profile (pdfa-1b, pdfa-2b, pdfx-3, pdfua-1)")
	objStm := flag.Bool("objstm", false, "use object streams and a cross-reference stream")
	noCompress := flag.Bool("no-compress", false, "disable stream compression")
	encrypt := flag.Bool("encrypt", false, "encrypt the document")
	keyLength := flag.Int("keylen", 128, "encryption key length in bits")
	passwd := flag.String("p", "", "owner password, prompted for if empty")
	jpegFile := flag.String("jpeg", "", "JPEG file to include on the second page")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Parse()

	profile, ok := profiles[*profileName]
	if !ok {
		log.Fatalf("unknown profile %q", *profileName)
	}
	opt := &pdf.Options{
		Profile:            profile,
		ObjectStreams:      *objStm,
		DisableCompression: *noCompress,
		Accessibility:      profile == pdf.ProfilePDFUA1,
		Creator:            "pdfgen",
		CreationDate:       time.Now(),
	}
	if *version != "" {
		v, err := pdf.ParseVersion(*version)
		check(err)
		opt.Version = v
	} else if *objStm || opt.Accessibility {
		opt.Version = pdf.V1_7
	}
	if *verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if *encrypt {
		pw := *passwd
		if pw == "" {
			fmt.Print("owner password: ")
			buf, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println("***")
			check(err)
			pw = string(buf)
		}
		opt.Encryption = &pdf.EncryptionParams{
			OwnerPassword: pw,
			Permissions:   pdf.PermPrint | pdf.PermCopy,
			KeyLength:     *keyLength,
		}
		opt.RequireEncryption = true
	}

	var jpegData []byte
	if *jpegFile != "" {
		var err error
		jpegData, err = os.ReadFile(*jpegFile)
		check(err)
	}

	fd, err := os.Create(*out)
	check(err)
	doc, err := pdf.NewDocument(fd, opt)
	check(err)
	err = build(doc, jpegData)
	check(err)
	err = doc.Close()
	check(err)
	err = fd.Close()
	check(err)
}

func build(doc *pdf.Document, jpegData []byte) error {
	info := doc.Info()
	info.Title = "Sample Document"
	info.Author = "pdfgen"
	info.Subject = "PDF serialization example"

	profile := doc.Profile()
	if profile.IsPDFA() || profile.IsPDFX() {
		_, err := color.AddSRGBOutputIntent(doc)
		if err != nil {
			return err
		}
	}
	if profile.IsPDFX() {
		info.Trapped = "False"
	}

	var tree *structure.Tree
	var body *structure.Element
	if doc.Options().Accessibility {
		var err error
		tree, err = structure.New(doc)
		if err != nil {
			return err
		}
		body, err = tree.AddElement("Document")
		if err != nil {
			return err
		}
		body.Title = info.Title
		doc.Catalog().Extra = pdf.Dict{"ViewerPreferences": pdf.Dict{"DisplayDocTitle": pdf.Bool(true)}}
	}

	ttf, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	font, err := fontfile.NewSFNT("GoRegular", ttf)
	if err != nil {
		return err
	}
	fontRef, err := fontfile.Share(doc, font)
	if err != nil {
		return err
	}
	fontName := doc.ResourceName(font)

	page1, err := doc.NewPage(a4)
	if err != nil {
		return err
	}
	page2, err := doc.NewPage(a4)
	if err != nil {
		return err
	}

	// page 1: title, a shaded bar and two links
	page1.AddResource("Font", fontName, fontRef)

	sh := &shading.Shading{
		ColorSpace: color.DeviceRGB,
		Coords:     []float64{72, 0, 523, 0},
		Function: &function.Type2{
			XMax: 1,
			C0:   []float64{0.1, 0.3, 0.8},
			C1:   []float64{0.9, 0.9, 1},
			N:    1,
		},
		TMax: 1,
	}
	pat := &shading.Pattern{Shading: sh, Matrix: matrix.Identity}
	patRef, err := shading.SharePattern(doc, pat)
	if err != nil {
		return err
	}
	patName := doc.ResourceName(pat)
	page1.AddResource("Pattern", patName, patRef)

	gs := &gstate.ExtGState{
		Set:       gstate.LineWidth | gstate.LineJoin,
		LineWidth: 2,
		LineJoin:  1,
	}
	gsRef, err := gstate.Share(doc, gs)
	if err != nil {
		return err
	}
	gsName := doc.ResourceName(gs)
	page1.AddResource("ExtGState", gsName, gsRef)

	mcid := -1
	if body != nil {
		heading, err := body.AddChild("H1")
		if err != nil {
			return err
		}
		mcid, err = heading.AddMarkedContent(page1)
		if err != nil {
			return err
		}
	}
	content1, err := addContent(doc, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "/Pattern cs /%s scn\n72 700 451 60 re f\n", patName)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "/%s gs 0 0 0.5 RG 72 600 451 40 re S\n", gsName)
		if err != nil {
			return err
		}
		if mcid >= 0 {
			_, err = fmt.Fprintf(w, "/H1 <</MCID %d>> BDC\n", mcid)
			if err != nil {
				return err
			}
		}
		err = color.Gray(0).SetFill(w)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "BT /%s 24 Tf 84 720 Td (Sample Document) Tj ET\n", fontName)
		if err != nil {
			return err
		}
		if mcid >= 0 {
			_, err = fmt.Fprint(w, "EMC\n")
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "BT /%s 12 Tf 84 615 Td (Go to page 2) Tj ET\n", fontName)
		return err
	})
	if err != nil {
		return err
	}
	page1.Contents = append(page1.Contents, content1)

	if !profile.IsPDFX() {
		link := annotation.NewLink(rect.Rect{LLx: 72, LLy: 600, URx: 523, URy: 640},
			&action.GoTo{Dest: &destination.Fit{Page: page2.Ref()}})
		_, err = annotation.Add(doc, page1, link)
		if err != nil {
			return err
		}

		web := annotation.NewLink(rect.Rect{LLx: 72, LLy: 560, URx: 300, URy: 580},
			&action.URI{URI: "https://www.iso.org/standard/75839.html"})
		_, err = annotation.Add(doc, page1, web)
		if err != nil {
			return err
		}
	}
	err = doc.Add(page1)
	if err != nil {
		return err
	}

	// page 2: an image, if one was given
	if jpegData != nil {
		imgRef, err := image.EmbedJPEG(doc, "photo", jpegData)
		if err != nil {
			return err
		}
		page2.AddResource("XObject", "Im1", imgRef)
		content2, err := addContent(doc, func(w io.Writer) error {
			_, err := fmt.Fprint(w, "q 451 0 0 300 72 400 cm /Im1 Do Q\n")
			return err
		})
		if err != nil {
			return err
		}
		page2.Contents = append(page2.Contents, content2)
	}
	err = doc.Add(page2)
	if err != nil {
		return err
	}

	err = destination.AddNamed(doc, "second-page", &destination.XYZ{
		Page: page2.Ref(),
		Left: destination.Unset,
		Top:  842,
		Zoom: destination.Unset,
	})
	if err != nil {
		return err
	}

	bookmarks := outline.New(doc)
	first, err := bookmarks.AddItem("Title Page")
	if err != nil {
		return err
	}
	err = first.SetDest(&destination.Fit{Page: page1.Ref()})
	if err != nil {
		return err
	}
	second, err := bookmarks.AddItem("Image")
	if err != nil {
		return err
	}
	err = second.SetDest(&destination.Named{Name: "second-page"})
	if err != nil {
		return err
	}

	if doc.Version() >= pdf.V1_4 {
		_, err = metadata.SetDocument(doc, nil)
		if err != nil {
			return err
		}
	}
	return nil
}

func addContent(doc *pdf.Document, produce func(w io.Writer) error) (pdf.Reference, error) {
	stm := pdf.NewStream(nil, pdf.StreamContent, produce)
	return doc.Register(stm)
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
