package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/octozek/internal/catalog"
	"github.com/Simplici0/octozek/internal/pricing"
)

type quoteResponse struct {
	OK     bool                     `json:"ok"`
	Input  pricing.Input            `json:"input"`
	Area   float64                  `json:"area"`
	Prices pricing.DisplayBreakdown `json:"prices"`
}

type galleryResponse struct {
	OK     bool            `json:"ok"`
	Images []catalog.Image `json:"images"`
}

// handleQuote prices a panel from the same fields the form submits.
// Missing or unreadable values count as zero.
func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := pricing.ParseInput(pricing.RawInput{
		WidthFeet:    q.Get("wFt"),
		WidthInches:  q.Get("wIn"),
		HeightFeet:   q.Get("hFt"),
		HeightInches: q.Get("hIn"),
		Thickness:    q.Get("thickness"),
	})

	rates, err := s.catalog.RatesOrDefault(r.Context())
	if err != nil {
		s.requestLogger(r).Error("failed to load rates", zap.Error(err))
		s.writeServerError(w, err.Error())
		return
	}

	result := pricing.Calculate(in, rates)
	writeJSON(w, http.StatusOK, quoteResponse{
		OK:     true,
		Input:  result.Input,
		Area:   result.Area,
		Prices: result.Breakdown.Display(),
	})
}

func (s *server) handleGallery(w http.ResponseWriter, r *http.Request) {
	images, err := s.catalog.Gallery(r.Context())
	if err != nil {
		s.requestLogger(r).Error("failed to load gallery", zap.Error(err))
		s.writeServerError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, galleryResponse{OK: true, Images: images})
}
