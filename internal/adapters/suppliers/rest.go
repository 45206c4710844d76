package suppliers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hotel_content/internal/domain"
)

var builders = map[string]func(*client) fetchFunc{
	domain.SupplierHotelbeds:            hotelbeds,
	domain.SupplierPaximum:              paximum,
	domain.SupplierStuba:                stuba,
	domain.SupplierDOTW:                 dotw,
	domain.SupplierAmadeus:              amadeus,
	domain.SupplierRoomerang:            roomerang,
	domain.SupplierRakuten:              rakuten,
	domain.SupplierIllusions:            illusions,
	domain.SupplierHotelston:            hotelston,
	domain.SupplierLetsfly:              letsfly,
	domain.SupplierGoGlobal:             goglobal,
	domain.SupplierGoGlobalMainSupplier: goglobalMain,
	domain.SupplierJuniper:              juniper,
	domain.SupplierInnstant:             innstant,
	domain.SupplierRestel:               restel,
	domain.SupplierRateHawk:             ratehawk,
	domain.SupplierRateHawkNew:          ratehawkNew,
	domain.SupplierAgoda:                agoda,
	domain.SupplierTBO:                  tbo,
	domain.SupplierEAN:                  ean,
	domain.SupplierGRNConnect:           grnconnect,
	domain.SupplierHyperGuest:           hyperguest,
	domain.SupplierRNR:                  rnr,
	domain.SupplierIRIX:                 irix,
	domain.SupplierKiwi:                 kiwi,
	domain.SupplierOryx:                 oryx,
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func bearer(token string) string { return "Bearer " + token }

func hotelbeds(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey, c.creds.Secret); err != nil {
			return nil, err
		}
		u := c.url("/hotel-content-api/1.0/hotels/"+url.PathEscape(id)+"/details",
			url.Values{"language": {"ENG"}, "useSecondaryLanguage": {"False"}})
		h := header(
			"Api-key", c.creds.APIKey,
			"X-Signature", hotelbedsSignature(c.creds.APIKey, c.creds.Secret, c.now()),
		)
		m, err := c.getJSON(ctx, "hotel_details", u, h)
		return expect(m, err, "hotel")
	}
}

// paximum logs in for every request; tokens are short-lived.
func paximum(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Agency, c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		login, err := c.postJSON(ctx, "login", c.url("/api/authenticationservice/login", nil), nil, map[string]string{
			"Agency":   c.creds.Agency,
			"User":     c.creds.Username,
			"Password": c.creds.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		token := text(lookup(login, "body", "token"))
		if token == "" {
			return nil, fmt.Errorf("login: %w", ErrUnauthorized)
		}
		m, err := c.postJSON(ctx, "product_info", c.url("/api/productservice/getproductInfo", nil),
			header("Authorization", bearer(token)),
			map[string]any{"productType": 2, "ownerProvider": 2, "product": id, "culture": "en-US"})
		return expect(m, err, "body", "hotel")
	}
}

func roomerang(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/v1/hotels/"+url.PathEscape(id), nil), header("X-Api-Key", c.creds.APIKey))
		return expect(m, err, "data", "hotel")
	}
}

func rakuten(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		u := c.url("/engine/api/Travel/HotelDetailSearch/20170426", url.Values{
			"applicationId": {c.creds.APIKey},
			"hotelNo":       {id},
			"format":        {"json"},
			"responseType":  {"large"},
		})
		m, err := c.getJSON(ctx, "hotel_detail_search", u, nil)
		return expect(m, err, "hotels")
	}
}

func illusions(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/hotels/"+url.PathEscape(id), nil),
			header("Authorization", basic(c.creds.Username, c.creds.Password)))
		return expect(m, err, "hotel")
	}
}

func letsfly(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/api/v1/hotels/"+url.PathEscape(id), nil),
			header("Authorization", bearer(c.creds.APIKey)))
		if err != nil {
			return nil, err
		}
		if s, ok := m["status"].(bool); ok && !s {
			return nil, ErrNoData
		}
		return expect(m, nil, "data")
	}
}

func innstant(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey, c.creds.Secret); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/hotels/"+url.PathEscape(id), nil), header(
			"aether-access-token", c.creds.APIKey,
			"aether-application-key", c.creds.Secret,
		))
		return expect(m, err, "id")
	}
}

// ratehawkInfo calls the hotel info endpoint and returns the envelope.
func ratehawkInfo(ctx context.Context, c *client, id string) (map[string]any, error) {
	if err := c.require(c.creds.Username, c.creds.APIKey); err != nil {
		return nil, err
	}
	m, err := c.postJSON(ctx, "hotel_info", c.url("/api/b2b/v3/hotel/info/", nil),
		header("Authorization", basic(c.creds.Username, c.creds.APIKey)),
		map[string]string{"id": id, "language": "en"})
	if err != nil {
		return nil, err
	}
	if status := text(m["status"]); status != "" && status != "ok" {
		reason := text(m["error"])
		if reason == "" || strings.Contains(reason, "not_found") {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("ratehawk: %s", reason)
	}
	if !present(m["data"]) {
		return nil, ErrNoData
	}
	return m, nil
}

func ratehawk(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		m, err := ratehawkInfo(ctx, c, id)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// ratehawkNew stores the hotel object without the response envelope.
func ratehawkNew(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		m, err := ratehawkInfo(ctx, c, id)
		if err != nil {
			return nil, err
		}
		return m["data"], nil
	}
}

func agoda(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Agency, c.creds.APIKey); err != nil {
			return nil, err
		}
		u := c.url("/datafeeds/feed/getfeed", url.Values{
			"feed_id":      {"19"},
			"apikey":       {c.creds.APIKey},
			"mhotel_id":    {id},
			"olanguage_id": {"1"},
		})
		m, err := c.getJSON(ctx, "hotel_feed", u, header("Authorization", c.creds.Agency+":"+c.creds.APIKey))
		return expect(m, err, "hotel_feed_full", "hotels", "hotel")
	}
}

func tbo(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		m, err := c.postJSON(ctx, "hotel_details", c.url("/HotelDetails", nil),
			header("Authorization", basic(c.creds.Username, c.creds.Password)),
			map[string]string{"Hotelcodes": id, "Language": "en"})
		if err != nil {
			return nil, err
		}
		if code := text(lookup(m, "Status", "Code")); code != "" && code != "200" {
			return nil, ErrNoData
		}
		return expect(m, nil, "HotelDetails")
	}
}

func ean(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey, c.creds.Secret); err != nil {
			return nil, err
		}
		u := c.url("/v3/properties/content", url.Values{
			"property_id":   {id},
			"language":      {"en-US"},
			"supply_source": {"expedia"},
		})
		m, err := c.getJSON(ctx, "property_content", u,
			header("Authorization", eanAuthorization(c.creds.APIKey, c.creds.Secret, c.now())))
		return expect(m, err, id)
	}
}

func hyperguest(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "property_static", c.url("/"+url.PathEscape(id)+"/property-static.json", nil),
			header("Authorization", bearer(c.creds.APIKey)))
		return expect(m, err, "id")
	}
}

func rnr(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/hotels/"+url.PathEscape(id), nil), header("X-Api-Key", c.creds.APIKey))
		return expect(m, err, "hotel")
	}
}

func irix(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/api/v1/hotels/"+url.PathEscape(id), nil),
			header("Authorization", bearer(c.creds.APIKey)))
		return expect(m, err, "hotel")
	}
}

const kiwiHotelQuery = `query Hotel($id: ID!) {
  hotel(id: $id) {
    id name description starRating checkIn checkOut phone email website
    address { street zip city { name code } country { name code } lat lng }
    photos { edges { node { url title isPrimary } } }
    amenities { edges { node { name } } }
    languages { edges { node { name } } }
    rooms { edges { node { id name description size maxOccupancy bedTypes } } }
  }
}`

func kiwi(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.postJSON(ctx, "graphql", c.url("/graphql", nil), header("apikey", c.creds.APIKey),
			map[string]any{"query": kiwiHotelQuery, "variables": map[string]string{"id": id}})
		if err != nil {
			return nil, err
		}
		if !present(lookup(m, "data", "hotel")) {
			if errs, ok := m["errors"].([]any); ok && len(errs) > 0 {
				return nil, fmt.Errorf("kiwi graphql: %s", text(lookup(errs[0], "message")))
			}
			return nil, ErrNoData
		}
		return m, nil
	}
}

func oryx(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		m, err := c.getJSON(ctx, "hotel", c.url("/hotels/"+url.PathEscape(id), nil), header("x-api-key", c.creds.APIKey))
		return expect(m, err, "hotelCode")
	}
}

// formHeader is used by the form-encoded XML gateways.
func formHeader() http.Header {
	return header("Content-Type", "application/x-www-form-urlencoded", "Accept", "text/xml")
}
