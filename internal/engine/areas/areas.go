// Package areas matches free-text addresses against the special area registry.
package areas

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// NormalizeKeywords trims, lower-cases and dedupes keywords, dropping empty ones.
// The result is sorted so stored keyword sets compare stably.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}

	sort.Strings(out)
	return out
}

// Match returns the first active area with a keyword contained in address.
// Matching is case-insensitive. Areas are tried in registry order.
func Match(registry []domain.SpecialArea, address string) (domain.SpecialArea, bool) {
	addr := strings.ToLower(address)
	if strings.TrimSpace(addr) == "" {
		return domain.SpecialArea{}, false
	}

	for _, area := range registry {
		if !area.IsActive {
			continue
		}
		for _, kw := range area.SearchKeywords {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(addr, kw) {
				return area, true
			}
		}
	}

	return domain.SpecialArea{}, false
}

// FindActive returns the active area with the given code
func FindActive(registry []domain.SpecialArea, code string) (domain.SpecialArea, bool) {
	for _, area := range registry {
		if area.IsActive && strings.EqualFold(area.Code, code) {
			return area, true
		}
	}
	return domain.SpecialArea{}, false
}

// ValidateKeywords checks the registry for ambiguous matching. An address
// that hits keywords of two active areas is a data defect, so a keyword that
// equals, contains or is contained in a keyword of another active area is rejected.
// Area codes must be unique across the whole registry.
func ValidateKeywords(registry []domain.SpecialArea) error {
	codes := make(map[string]struct{}, len(registry))
	for _, area := range registry {
		code := strings.ToLower(area.Code)
		if code == "" {
			return domain.NewIntegrityError(domain.EntitySpecialArea, "area #%d has empty code", area.ID)
		}
		if _, dup := codes[code]; dup {
			return domain.NewIntegrityError(domain.EntitySpecialArea, "duplicate area code %q", area.Code)
		}
		codes[code] = struct{}{}
	}

	for i := range registry {
		a := &registry[i]
		if !a.IsActive {
			continue
		}
		if len(a.SearchKeywords) == 0 {
			return domain.NewIntegrityError(domain.EntitySpecialArea, "active area %q has no keywords", a.Code)
		}

		for j := i + 1; j < len(registry); j++ {
			b := &registry[j]
			if !b.IsActive {
				continue
			}
			if kwA, kwB, ok := ambiguousPair(a.SearchKeywords, b.SearchKeywords); ok {
				return domain.NewIntegrityError(domain.EntitySpecialArea,
					"keyword %q of area %q clashes with keyword %q of area %q", kwA, a.Code, kwB, b.Code)
			}
		}
	}

	return nil
}

func ambiguousPair(left, right []string) (string, string, bool) {
	for _, l := range left {
		l = strings.ToLower(l)
		for _, r := range right {
			r = strings.ToLower(r)
			if strings.Contains(l, r) || strings.Contains(r, l) {
				return l, r, true
			}
		}
	}
	return "", "", false
}
