package normalize

import (
	"strings"

	"hotel_content/internal/domain"
)

const grnImageBase = "https://cdn.grnconnect.com/"

// The GRN payload is assembled by the fetcher from four calls:
// {hotel, country, city, images}.
func mapGRNConnect(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierGRNConnect, raw)
	if err != nil {
		return err
	}
	hotel := dig(m, "hotel")
	if hs := digList(hotel, "hotels"); hs != nil {
		hotel = hs[0]
	}
	if err := setID(h, dig(hotel, "code")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "category"))
	h.Chain = digSP(hotel, "chain_name")
	h.PropertyType = digSP(hotel, "acc_name")
	h.DestinationCode = digSP(hotel, "dest_code")

	country := dig(m, "country")
	if cs := digList(country, "countries"); cs != nil {
		country = cs[0]
	}
	city := dig(m, "city")
	if cs := digList(city, "cities"); cs != nil {
		city = cs[0]
	}
	line1 := digStr(hotel, "address")
	cityName := digStr(city, "name")
	countryName := digStr(country, "name")
	cc := firstNonEmpty(digStr(hotel, "country"), digStr(country, "code"))
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(cityName),
		Country:      ptr(countryName),
		CountryCode:  ptr(cc),
		PostalCode:   digSP(hotel, "postal_code"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, cityName, digStr(hotel, "postal_code"), countryName)),
		Mapping: domain.AddressMapping{
			CountryID: ptr(cc),
			CityID:    ptr(firstNonEmpty(digStr(hotel, "city_code"), digStr(city, "code"))),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	addFacilities(h, splitList(digStr(hotel, "facilities"), ";")...)

	images := dig(m, "images")
	if inner := dig(images, "images"); inner != nil {
		images = inner
	}
	for _, img := range list(images) {
		path := digStr(img, "path")
		if path == "" {
			continue
		}
		url := path
		if !strings.HasPrefix(path, "http") {
			url = grnImageBase + strings.TrimPrefix(path, "/")
		}
		addPhoto(h, digStr(img, "id"), digStr(img, "caption"), url)
		if digStr(img, "main_image") == "Y" {
			h.PrimaryPhoto = ptr(url)
		}
	}
	return nil
}
