package normalize

import "hotel_content/internal/domain"

func stubaHotel(m map[string]any) any {
	for _, path := range [][]any{
		{"HotelDetailsResponse", "Hotel"},
		{"HotelElement"},
		{"Hotel"},
	} {
		if v := dig(m, path...); v != nil {
			return dig(v, 0)
		}
	}
	return nil
}

func mapStuba(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierStuba, raw)
	if err != nil {
		return err
	}
	hotel := stubaHotel(m)
	if err := setID(h, firstNonEmpty(digStr(hotel, "Id"), digStr(hotel, "@Id"))); err != nil {
		return err
	}

	h.Name = digSP(hotel, "Name")
	h.PropertyType = digSP(hotel, "Type")
	h.StarRating = cleanStar(dig(hotel, "Stars"))
	h.DestinationCode = digSP(hotel, "Region", "Id")

	addr := digMap(hotel, "Address")
	line1 := digStr(addr, "Address1")
	line2 := joinNonEmpty(", ", digStr(addr, "Address2"), digStr(addr, "Address3"))
	city := firstNonEmpty(digStr(addr, "City"), digStr(hotel, "Region", "Name"))
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "GeneralInfo", "Latitude"),
		Longitude:    digFloat(hotel, "GeneralInfo", "Longitude"),
		AddressLine1: ptr(line1),
		AddressLine2: ptr(line2),
		City:         ptr(city),
		State:        digSP(addr, "State"),
		Country:      digSP(addr, "Country"),
		PostalCode:   digSP(addr, "Zip"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, line2, city, digStr(addr, "Zip"), digStr(addr, "Country"))),
		Mapping: domain.AddressMapping{
			CityID: digSP(hotel, "Region", "CityId"),
			AreaID: digSP(hotel, "Region", "Id"),
		},
	}
	if h.Address.Latitude == nil {
		h.Address.Latitude = digFloat(hotel, "Location", "Latitude")
		h.Address.Longitude = digFloat(hotel, "Location", "Longitude")
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(addr, "Tel"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(addr, "Fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(addr, "Email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(addr, "Url"))

	for _, d := range digList(hotel, "Description") {
		addDescription(h, digStr(d, "Type"), htmlText(digStr(d, "Text")))
	}
	for _, a := range digList(hotel, "Amenity") {
		addAmenities(h, firstNonEmpty(digStr(a, "Text"), str(a)))
	}
	for _, p := range digList(hotel, "Photo") {
		addPhoto(h, "", digStr(p, "Caption"), digStr(p, "Url"))
	}
	if r := dig(hotel, "Rating"); r != nil {
		h.ReviewRating = domain.ReviewRating{
			Source:        ptr("Stuba"),
			RatingAverage: sp(firstNonEmpty(digStr(r, "Score"), str(r))),
		}
	}
	return nil
}
