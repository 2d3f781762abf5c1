package scraper

import "strings"

// PickSrcsetURL selects one URL from a srcset value. The first candidate
// whose text contains "2x" wins; otherwise the first candidate is used. Only
// the token before the first whitespace is returned. An empty result means
// the srcset held no usable candidate.
func PickSrcsetURL(srcset string) string {
	var candidates []string
	for _, part := range strings.Split(srcset, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			candidates = append(candidates, part)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	chosen := candidates[0]
	for _, candidate := range candidates {
		if strings.Contains(candidate, "2x") {
			chosen = candidate
			break
		}
	}
	fields := strings.Fields(chosen)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// NormalizeImageURL turns protocol-relative and root-relative URLs into
// absolute ones. Protocol-relative URLs get https; root-relative URLs get
// origin. Anything else is returned unchanged.
func NormalizeImageURL(raw, origin string) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(origin, "/") + raw
	default:
		return raw
	}
}
