package normalize

import "hotel_content/internal/domain"

// irixMapper resolves city and country names from the IRIX gazetteer.
type irixMapper struct{ refs References }

func (im irixMapper) Map(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierIRIX, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "hotel")
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}
	cityID := digStr(hotel, "cityId")
	geo, _, err := im.refs.IRIXCity(cityID)
	if err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "stars"))
	h.PropertyType = digSP(hotel, "type")
	h.DestinationCode = ptr(cityID)
	h.CountryCode = ptr(geo.CountryCode)

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitude"),
		Longitude:    digFloat(hotel, "longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(geo.City),
		Country:      ptr(geo.Country),
		CountryCode:  ptr(geo.CountryCode),
		PostalCode:   digSP(hotel, "postalCode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, geo.City, digStr(hotel, "postalCode"), geo.Country)),
		Mapping:      domain.AddressMapping{CityID: ptr(cityID)},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	for _, d := range digList(hotel, "descriptions") {
		addDescription(h, digStr(d, "type"), htmlText(digStr(d, "text")))
	}
	for _, f := range digList(hotel, "facilities") {
		addFacilities(h, firstNonEmpty(digStr(f, "name"), str(f)))
	}
	for _, img := range digList(hotel, "images") {
		addPhoto(h, "", digStr(img, "description"), firstNonEmpty(digStr(img, "url"), str(img)))
	}
	return nil
}
