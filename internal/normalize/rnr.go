package normalize

import "hotel_content/internal/domain"

func mapRNR(raw any, h *domain.CanonicalHotel) error {
	m, err := object(domain.SupplierRNR, raw)
	if err != nil {
		return err
	}
	hotel := digMap(m, "hotel")
	if err := setID(h, dig(hotel, "hotel_id")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "hotel_name")
	h.StarRating = cleanStar(dig(hotel, "star"))
	h.PropertyType = digSP(hotel, "property_type")

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "lat"),
		Longitude:    digFloat(hotel, "lng"),
		AddressLine1: ptr(line1),
		City:         digSP(hotel, "city"),
		Country:      digSP(hotel, "country"),
		CountryCode:  digSP(hotel, "country_code"),
		PostalCode:   digSP(hotel, "zip"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, digStr(hotel, "city"), digStr(hotel, "zip"), digStr(hotel, "country"))),
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "website"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "check_in")
	h.Policies.Checkout.Time = digSP(hotel, "check_out")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	addAmenities(h, splitList(digStr(hotel, "amenities"), "|")...)
	for i, url := range splitList(digStr(hotel, "photos"), "|") {
		addPhoto(h, str(i+1), "", url)
	}
	return nil
}
