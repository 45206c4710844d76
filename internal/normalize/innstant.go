package normalize

import "hotel_content/internal/domain"

type innstantMapper struct{ refs References }

func (im innstantMapper) Map(raw any, h *domain.CanonicalHotel) error {
	hotel, err := object(domain.SupplierInnstant, raw)
	if err != nil {
		return err
	}
	if err := setID(h, dig(hotel, "id")); err != nil {
		return err
	}
	geo, _, err := im.refs.Innstant(h.HotelID)
	if err != nil {
		return err
	}

	h.Name = ptr(firstNonEmpty(digStr(hotel, "name"), geo.HotelName))
	h.StarRating = ptr(geo.StarRating)
	h.CountryCode = ptr(geo.CountryCode)
	h.DestinationCode = digSP(hotel, "destinationId")

	line1 := digStr(hotel, "address")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "lat"),
		Longitude:    digFloat(hotel, "lon"),
		AddressLine1: ptr(line1),
		City:         ptr(geo.City),
		Country:      ptr(geo.Country),
		CountryCode:  ptr(geo.CountryCode),
		PostalCode:   digSP(hotel, "zip"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, geo.City, digStr(hotel, "zip"), geo.Country)),
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "phone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(hotel, "fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "email"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkin")
	h.Policies.Checkout.Time = digSP(hotel, "checkout")

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "description")))
	for _, f := range digList(hotel, "facilities") {
		addFacilities(h, firstNonEmpty(digStr(f, "name"), str(f)))
	}
	for _, img := range digList(hotel, "images") {
		addPhoto(h, digStr(img, "id"), digStr(img, "title"), firstNonEmpty(digStr(img, "url"), str(img)))
	}
	return nil
}
