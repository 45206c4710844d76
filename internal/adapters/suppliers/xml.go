package suppliers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hotel_content/internal/xmldict"
)

func xmlHeader() http.Header {
	return header("Content-Type", "text/xml; charset=utf-8", "Accept", "text/xml")
}

func stuba(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Organisation, c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>`+
			`<HotelDetailsRequest><Authority><Org>%s</Org><User>%s</User><Password>%s</Password>`+
			`<Currency>USD</Currency><Version>1.28</Version></Authority><Hotel>%s</Hotel></HotelDetailsRequest>`,
			esc(c.creds.Organisation), esc(c.creds.Username), esc(c.creds.Password), esc(id))
		m, err := c.postXML(ctx, "hotel_details", c.url("", nil), xmlHeader(), []byte(body))
		return expect(m, err, "HotelDetailsResponse", "Hotel")
	}
}

func dotw(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password, c.creds.Agency); err != nil {
			return nil, err
		}
		body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>`+
			`<customer><username>%s</username><password>%s</password><id>%s</id><source>1</source><product>hotel</product>`+
			`<request command="searchhotels"><return><filters><hotelId>%s</hotelId><noPrice>true</noPrice></filters>`+
			`<fields><field>hotelName</field><field>address</field><field>description1</field><field>amenitie</field>`+
			`<field>images</field><field>geoPoint</field><field>transportation</field><field>rating</field></fields>`+
			`</return></request></customer>`,
			esc(c.creds.Username), md5Hex(c.creds.Password), esc(c.creds.Agency), esc(id))
		m, err := c.postXML(ctx, "searchhotels", c.url("/gatewayV4.dotw", nil), xmlHeader(), []byte(body))
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(text(lookup(m, "result", "successful")), "false") {
			if msg := text(lookup(m, "result", "request", "error", "details")); msg != "" {
				return nil, fmt.Errorf("dotw: %s", msg)
			}
		}
		return expect(m, nil, "result", "hotels", "hotel")
	}
}

const amadeusAction = "http://webservices.amadeus.com/OTA_HotelDescriptiveInfoRQ_07.1_1A2007A"

func amadeus(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		body := fmt.Sprintf(`<OTA_HotelDescriptiveInfoRQ xmlns="http://www.opentravel.org/OTA/2003/05" Version="6.001" PrimaryLangID="en">`+
			`<HotelDescriptiveInfos><HotelDescriptiveInfo HotelCode="%s">`+
			`<HotelInfo SendData="true"/><FacilityInfo SendGuestRooms="true" SendMeetingRooms="true" SendRestaurants="true"/>`+
			`<Policies SendPolicies="true"/><AreaInfo SendAttractions="true" SendRefPoints="true" SendRecreations="true"/>`+
			`<AffiliationInfo SendAwards="true"/><ContactInfo SendData="true"/><MultimediaObjects SendData="true"/>`+
			`</HotelDescriptiveInfo></HotelDescriptiveInfos></OTA_HotelDescriptiveInfoRQ>`, esc(id))
		env := envelope(wsseSecurity(c.creds.Username, c.creds.Password, c.now()), body)
		m, err := c.postXML(ctx, "hotel_descriptive_info", c.url("", nil), soapHeader(amadeusAction), env)
		if err != nil {
			return nil, err
		}
		b, err := soapBody(m)
		if err != nil {
			return nil, err
		}
		if !present(find(b, "HotelDescriptiveContent")) {
			return nil, ErrNoData
		}
		return m, nil
	}
}

func hotelston(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		body := fmt.Sprintf(`<xsd:HotelDetailsRequest xmlns:xsd="http://request.ws.hotelston.com/xsd">`+
			`<xsd:loginDetails email="%s" password="%s"/><xsd:language>en</xsd:language>`+
			`<xsd:hotelId>%s</xsd:hotelId></xsd:HotelDetailsRequest>`,
			esc(c.creds.Username), esc(c.creds.Password), esc(id))
		m, err := c.postXML(ctx, "hotel_details", c.url("", nil), soapHeader("getHotelDetails"), envelope("", body))
		if err != nil {
			return nil, err
		}
		b, err := soapBody(m)
		if err != nil {
			return nil, err
		}
		if !present(find(b, "hotel")) {
			return nil, ErrNoData
		}
		return m, nil
	}
}

const goglobalAction = "http://www.goglobal.travel/MakeRequest"

// goglobalCall returns the decoded envelope and its parsed inner <Root>.
func goglobalCall(ctx context.Context, c *client, id string) (map[string]any, map[string]any, error) {
	if err := c.require(c.creds.Agency, c.creds.Username, c.creds.Password); err != nil {
		return nil, nil, err
	}
	inner := fmt.Sprintf(`<Root><Header><Agency>%s</Agency><User>%s</User><Password>%s</Password>`+
		`<Operation>HOTEL_INFO_REQUEST</Operation><OperationType>Request</OperationType></Header>`+
		`<Main Version="2.2"><InfoHotelId>%s</InfoHotelId><InfoLanguage>en</InfoLanguage></Main></Root>`,
		esc(c.creds.Agency), esc(c.creds.Username), esc(c.creds.Password), esc(id))
	body := `<MakeRequest xmlns="http://www.goglobal.travel/"><requestType>6</requestType>` +
		`<xmlRequest>` + esc(inner) + `</xmlRequest></MakeRequest>`
	m, err := c.postXML(ctx, "make_request", c.url("", nil), soapHeader(goglobalAction), envelope("", body))
	if err != nil {
		return nil, nil, err
	}
	b, err := soapBody(m)
	if err != nil {
		return nil, nil, err
	}
	result := text(find(b, "MakeRequestResult"))
	if result == "" {
		return nil, nil, ErrNoData
	}
	root, err := xmldict.DecodeString(result)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: MakeRequestResult: %v", ErrMalformed, err)
	}
	main := lookup(root, "Root", "Main")
	if present(lookup(main, "Error")) {
		return nil, nil, ErrNoData
	}
	if !present(lookup(main, "HotelId")) && !present(lookup(main, "HotelCode")) && !present(lookup(main, "HotelName")) {
		return nil, nil, ErrNoData
	}
	return m, root, nil
}

func goglobal(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		env, _, err := goglobalCall(ctx, c, id)
		if err != nil {
			return nil, err
		}
		return env, nil
	}
}

// goglobalMain stores the inner <Root> document with the envelope removed.
func goglobalMain(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		_, root, err := goglobalCall(ctx, c, id)
		if err != nil {
			return nil, err
		}
		return root, nil
	}
}

func juniper(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password); err != nil {
			return nil, err
		}
		body := fmt.Sprintf(`<HotelContent xmlns="http://www.juniper.es/webservice/2007/">`+
			`<HotelContentRQ Version="1.1" Language="en"><Login Email="%s" Password="%s"/>`+
			`<HotelContentList><Hotel Code="%s"/></HotelContentList></HotelContentRQ></HotelContent>`,
			esc(c.creds.Username), esc(c.creds.Password), esc(id))
		m, err := c.postXML(ctx, "hotel_content", c.url("", nil), soapHeader("HotelContent"), envelope("", body))
		if err != nil {
			return nil, err
		}
		b, err := soapBody(m)
		if err != nil {
			return nil, err
		}
		if present(find(b, "Contents")) || present(find(b, "HotelContentResult")) {
			return m, nil
		}
		return nil, ErrNoData
	}
}

// restel opens a cookie session per fetch, then sends the hotel info
// request (type 15) inside it.
func restel(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.Username, c.creds.Password, c.creds.Agency, c.creds.APIKey); err != nil {
			return nil, err
		}
		login := url.Values{
			"codusu":    {c.creds.Username},
			"clausu":    {c.creds.Password},
			"afiliacio": {c.creds.Agency},
			"secacc":    {c.creds.APIKey},
		}
		resp, err := c.t.Do(ctx, "login", Request{
			Method: http.MethodPost,
			URL:    c.url("/xml/login.php", nil),
			Header: formHeader(),
			Body:   []byte(login.Encode()),
		})
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		cookies := (&http.Response{Header: resp.Header}).Cookies()
		if len(cookies) == 0 {
			return nil, fmt.Errorf("login: %w", ErrUnauthorized)
		}

		peticion := fmt.Sprintf(`<?xml version="1.0" encoding="ISO-8859-1"?>`+
			`<peticion><tipo>15</tipo><nombre>Servicio de informacion de hotel</nombre>`+
			`<agencia>%s</agencia><parametros><codigo>%s</codigo><idioma>2</idioma></parametros></peticion>`,
			esc(c.creds.Agency), esc(id))
		h := formHeader()
		for _, ck := range cookies {
			h.Add("Cookie", ck.Name+"="+ck.Value)
		}
		m, err := c.postXML(ctx, "hotel_info", c.url("/xml/servlet/xmlservice", nil), h,
			[]byte(url.Values{"xml": {peticion}}.Encode()))
		return expect(m, err, "respuesta", "parametros", "hotel")
	}
}
