package service

import (
	"bytes"
	"io"
	"log"
	"sort"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/tieubaoca/docuquery-be/types"
)

// DocumentParser turns raw PDF bytes into an ordered page sequence.
type DocumentParser interface {
	Parse(data []byte, filename string) ([]types.Page, error)
}

// PDFService extracts per-page text and embedded raster images from a PDF.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Parse returns every page of the document in order, including pages with no
// text. A malformed document fails the whole call. Image extraction problems
// are logged and leave the affected pages without images.
func (s *PDFService) Parse(data []byte, filename string) ([]types.Page, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &types.ParseError{Err: err}
	}

	images, err := s.extractImages(data)
	if err != nil {
		log.Printf("Warning: image extraction failed for %s: %v", filename, err)
		images = nil
	}

	numPages := reader.NumPage()
	pages := make([]types.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		var text string
		page := reader.Page(i)
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			} else {
				log.Printf("Warning: failed to extract text from page %d of %s: %v", i, filename, err)
			}
		}
		pages = append(pages, types.Page{
			Index:  i - 1,
			Text:   text,
			Images: images[i],
		})
	}
	return pages, nil
}

// extractImages collects each page's raster images, keyed by 1-based page
// number, with ordinals assigned in object-number order so repeated parses of
// the same file name images identically.
func (s *PDFService) extractImages(data []byte) (map[int][]types.ImageAsset, error) {
	conf := model.NewDefaultConfiguration()
	pageImages, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, conf)
	if err != nil {
		return nil, err
	}

	result := make(map[int][]types.ImageAsset)
	for _, byObjNr := range pageImages {
		objNrs := make([]int, 0, len(byObjNr))
		for objNr := range byObjNr {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)
		for _, objNr := range objNrs {
			img := byObjNr[objNr]
			raw, err := io.ReadAll(img)
			if err != nil || len(raw) == 0 {
				continue
			}
			ext := img.FileType
			if ext == "" {
				ext = "png"
			}
			result[img.PageNr] = append(result[img.PageNr], types.ImageAsset{
				Ordinal: len(result[img.PageNr]),
				Ext:     ext,
				Data:    raw,
			})
		}
	}
	return result, nil
}
