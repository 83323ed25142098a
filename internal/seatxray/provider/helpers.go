package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
	"github.com/spf13/cast"
)

// cacheTTLFromHeader reads max-age from Cache-Control. Zero means no usable hint.
func cacheTTLFromHeader(header interface{ Get(string) string }) time.Duration {
	if header == nil {
		return 0
	}
	for _, directive := range strings.Split(header.Get("Cache-Control"), ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}
		seconds, err := strconv.Atoi(strings.Trim(strings.TrimSpace(value), `"`))
		if err != nil || seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	return 0
}

// sanitizeOffer decodes a fresh copy of the offer and fills operating.carrierCode from the
// marketing carrier on segments that lack it; the seat map endpoint rejects those.
func sanitizeOffer(offer entity.Offer) (map[string]any, error) {
	raw, err := offer.Raw()
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode offer %s: %w", offer.ID, err)
	}

	for _, itinerary := range cast.ToSlice(doc["itineraries"]) {
		for _, s := range cast.ToSlice(cast.ToStringMap(itinerary)["segments"]) {
			segment := cast.ToStringMap(s)
			operating := cast.ToStringMap(segment["operating"])
			if cast.ToString(operating["carrierCode"]) == "" {
				operating["carrierCode"] = cast.ToString(segment["carrierCode"])
				segment["operating"] = operating
			}
		}
	}
	return doc, nil
}

func apiErrorMessage(body []byte, fallback string) string {
	var payload struct {
		Errors []struct {
			Status int    `json:"status"`
			Code   int    `json:"code"`
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return fallback
	}

	messages := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		msg := e.Title
		if e.Detail != "" {
			if msg != "" {
				msg += ": "
			}
			msg += e.Detail
		}
		if msg == "" {
			msg = fmt.Sprintf("code %d", e.Code)
		}
		messages = append(messages, msg)
	}
	return strings.Join(messages, "; ")
}
