package upstream

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LinkPolicy decides which booking links are shown and how fallback links are built.
type LinkPolicy struct {
	// SearchBaseURL is the external ticket-search page used for synthesized links
	SearchBaseURL string

	// TicketBaseURL prefixes relative ticket links
	TicketBaseURL string

	Marker    string
	UTMSource string

	// OwnDomain rejects links pointing back at this product
	OwnDomain string

	// PartnerHosts is the allow-list of host fragments for upstream links
	PartnerHosts []string
}

// DefaultLinkPolicy returns the production booking link policy.
func DefaultLinkPolicy() LinkPolicy {
	return LinkPolicy{
		SearchBaseURL: "https://www.aviasales.ru/search",
		TicketBaseURL: "https://www.aviasales.ru",
		Marker:        "672309",
		UTMSource:     "yuvia",
		OwnDomain:     "yuvia",
		PartnerHosts:  []string{"aviasales", "travelpayouts", "tp.st", "jetradar", "tp.media"},
	}
}

// LinkRequest carries the trip parameters encoded into a synthesized link.
type LinkRequest struct {
	Origin      string
	Destination string
	Depart      time.Time
	Return      time.Time
	RoundTrip   bool
	Adults      int
	Currency    string
}

// Pick returns the first upstream link candidate that passes Allowed, or "".
func (p LinkPolicy) Pick(raw Raw) string {
	for _, key := range OfferAliases[FieldDeeplinkCandidate] {
		v, ok := lookupPath(raw, key)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if p.Allowed(s) {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Allowed reports whether link is absolute, points at a partner host and not at our own domain.
func (p LinkPolicy) Allowed(link string) bool {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if p.OwnDomain != "" && strings.Contains(host, strings.ToLower(p.OwnDomain)) {
		return false
	}
	for _, partner := range p.PartnerHosts {
		if strings.Contains(host, strings.ToLower(partner)) {
			return true
		}
	}
	return false
}

// TicketURL turns an upstream ticket link into an absolute URL. Empty input stays empty.
func (p LinkPolicy) TicketURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if u, err := url.Parse(link); err == nil && u.IsAbs() {
		return link
	}
	return strings.TrimRight(p.TicketBaseURL, "/") + "/" + strings.TrimLeft(link, "/")
}

// SearchURL synthesizes a ticket-search link, or "" when origin, destination
// or departure date is unknown.
func (p LinkPolicy) SearchURL(req LinkRequest) string {
	if req.Origin == "" || req.Destination == "" || req.Depart.IsZero() {
		return ""
	}
	adults := max(req.Adults, 1)

	var slug strings.Builder
	slug.WriteString(strings.ToUpper(req.Origin))
	slug.WriteString(req.Depart.Format("0201"))
	slug.WriteString(strings.ToUpper(req.Destination))
	if req.RoundTrip {
		ret := req.Return
		if ret.IsZero() {
			ret = req.Depart
		}
		slug.WriteString(ret.Format("0201"))
	}
	slug.WriteString(strconv.Itoa(adults))

	q := url.Values{}
	if p.Marker != "" {
		q.Set("marker", p.Marker)
	}
	q.Set("with_request", "true")
	q.Set("adults", strconv.Itoa(adults))
	if req.Currency != "" {
		q.Set("currency", strings.ToLower(req.Currency))
	}
	if p.UTMSource != "" {
		q.Set("utm_source", p.UTMSource)
	}

	return strings.TrimRight(p.SearchBaseURL, "/") + "/" + slug.String() + "?" + q.Encode()
}
