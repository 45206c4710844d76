package normalize

import "hotel_content/internal/domain"

func mapPaximum(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierPaximum, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "body", "hotel")
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "name")
	h.StarRating = cleanStar(dig(hotel, "stars"))
	h.DestinationCode = digSP(hotel, "location", "id")
	h.PropertyType = digSP(hotel, "hotelCategory", "name")
	h.Logo = digSP(hotel, "thumbnailFull")

	addr := digMap(hotel, "address")
	lines := stringsOf(digList(addr, "addressLines"))
	line1 := firstNonEmpty(joinNonEmpty(" ", digStr(addr, "street"), digStr(addr, "streetNumber")), firstOf(lines))
	city := firstNonEmpty(digStr(addr, "city", "name"), digStr(hotel, "city", "name"))
	country := firstNonEmpty(digStr(addr, "country", "name"), digStr(hotel, "country", "name"))
	countryCode := firstNonEmpty(digStr(addr, "country", "id"), digStr(hotel, "country", "id"))
	full := joinNonEmpty(", ", lines...)
	if full == "" {
		full = joinNonEmpty(", ", line1, city, digStr(addr, "zipCode"), country)
	}
	h.Address = domain.Address{
		Latitude:     digFloat(addr, "geolocation", "latitude"),
		Longitude:    digFloat(addr, "geolocation", "longitude"),
		AddressLine1: ptr(line1),
		AddressLine2: ptr(secondOf(lines)),
		City:         ptr(city),
		Country:      ptr(country),
		CountryCode:  ptr(countryCode),
		PostalCode:   digSP(addr, "zipCode"),
		FullAddress:  ptr(full),
		Mapping: domain.AddressMapping{
			CountryID: ptr(countryCode),
			CityID:    ptr(firstNonEmpty(digStr(addr, "city", "id"), digStr(hotel, "city", "id"))),
		},
	}

	if p := digStr(hotel, "phoneNumber"); p != "" {
		h.Contacts.PhoneNumbers = append(h.Contacts.PhoneNumbers, p)
	}
	if f := digStr(hotel, "faxNumber"); f != "" {
		h.Contacts.Fax = append(h.Contacts.Fax, f)
	}
	if w := digStr(hotel, "homePage"); w != "" {
		h.Contacts.Website = append(h.Contacts.Website, w)
	}

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description", "text")))
	for _, season := range digList(hotel, "seasons") {
		for _, cat := range digList(season, "textCategories") {
			for _, pr := range digList(cat, "presentations") {
				addDescription(h, digStr(cat, "name"), htmlText(digStr(pr, "text")))
			}
		}
		for _, cat := range digList(season, "facilityCategories") {
			for _, f := range digList(cat, "facilities") {
				addFacilities(h, digStr(f, "name"))
			}
		}
		for _, mf := range digList(season, "mediaFiles") {
			addPhoto(h, digStr(mf, "fileType"), "", digStr(mf, "urlFull"))
		}
	}
	return nil
}

func firstOf(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func secondOf(s []string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1]
}
