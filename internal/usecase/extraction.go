package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

type extractionPayload struct {
	Leads []rawCandidate `json:"leads"`
}

// rawCandidate takes every field as any JSON value: models send 75, 75.0 or
// "75" for the score and sometimes bare numbers for phones.
type rawCandidate struct {
	Name         any `json:"name"`
	Phone        any `json:"phone"`
	Address      any `json:"address"`
	Website      any `json:"website"`
	BusinessType any `json:"businessType"`
	Score        any `json:"score"`
	Notes        any `json:"notes"`
}

func (r rawCandidate) candidate() entity.Candidate {
	c := entity.Candidate{
		Name:         scalarText(r.Name),
		Phone:        optionalText(r.Phone),
		Address:      optionalText(r.Address),
		Website:      optionalText(r.Website),
		BusinessType: scalarText(r.BusinessType),
		Notes:        scalarText(r.Notes),
	}
	switch v := r.Score.(type) {
	case float64:
		c.Score = int(math.Round(v))
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.Score = int(math.Round(f))
		}
	}
	c.Normalize()
	return c
}

// scalarText renders strings, numbers and booleans; null, objects and arrays
// become "".
func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func optionalText(v any) *string {
	if v == nil {
		return nil
	}
	s := scalarText(v)
	return &s
}

// ParseCandidates recovers the candidate list from a model answer that may wrap
// the JSON object in prose or code fences. Only the first balanced top-level
// object that decodes is used.
func ParseCandidates(content string) ([]entity.Candidate, error) {
	var lastErr error
	rest := content
	for {
		start, end, ok := firstObject(rest)
		if !ok {
			break
		}

		var payload extractionPayload
		if err := json.Unmarshal([]byte(rest[start:end]), &payload); err != nil {
			lastErr = err
			rest = rest[end:]
			continue
		}

		candidates := make([]entity.Candidate, 0, len(payload.Leads))
		for _, r := range payload.Leads {
			c := r.candidate()
			if c.Name == "" {
				continue
			}
			candidates = append(candidates, c)
		}
		return candidates, nil
	}

	return nil, &ParseError{Snippet: content, Err: lastErr}
}

// firstObject finds the byte span of the first balanced {...} in s, skipping
// braces inside JSON strings.
func firstObject(s string) (start, end int, ok bool) {
	start = strings.IndexByte(s, '{')
	if start < 0 {
		return 0, 0, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}
	return 0, 0, false
}
