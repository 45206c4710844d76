package normalize

import (
	"fmt"

	"hotel_content/internal/domain"
)

// mapGoGlobal unwraps the SOAP envelope; MakeRequestResult carries the
// real response as an escaped <Root> document.
func mapGoGlobal(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierGoGlobal, raw)
	if err != nil {
		return err
	}
	result := findFirst(soapBody(m), "MakeRequestResult")
	if result == nil {
		return mapGoGlobalRoot(m, h)
	}
	inner, err := innerDocument(domain.SupplierGoGlobal+".MakeRequestResult", result)
	if err != nil {
		return err
	}
	return mapGoGlobalRoot(inner, h)
}

// mapGoGlobalMain handles payloads stored with the envelope already removed.
func mapGoGlobalMain(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierGoGlobalMainSupplier, raw)
	if err != nil {
		return err
	}
	return mapGoGlobalRoot(m, h)
}

func mapGoGlobalRoot(doc map[string]any, h *domain.CanonicalHotel) error {
	root := getOr(doc, doc, "Root")
	main := digMap(root, "Main")
	if err := setID(h, firstNonEmpty(digStr(main, "HotelId"), digStr(main, "HotelCode"), digStr(main, "Source", "HotelId"))); err != nil {
		return err
	}

	h.Name = digSP(main, "HotelName")
	h.StarRating = starFromText(digStr(main, "Category"))
	h.DestinationCode = digSP(main, "CityCode")

	line1 := htmlText(digStr(main, "Address"))
	h.Address = domain.Address{
		Latitude:     digFloat(main, "Coordinates", "Latitude"),
		Longitude:    digFloat(main, "Coordinates", "Longitude"),
		AddressLine1: ptr(line1),
		City:         digSP(main, "CityName"),
		Country:      digSP(main, "CountryName"),
		CountryCode:  digSP(main, "CountryCode"),
		FullAddress:  ptr(line1),
		Mapping: domain.AddressMapping{
			CityID:    digSP(main, "CityCode"),
			CountryID: digSP(main, "CountryId"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(main, "Phone"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(main, "Fax"))

	addDescription(h, "Hotel Description", htmlText(digStr(main, "Description")))
	if r := htmlText(digStr(main, "Remark")); r != "" {
		h.Policies.Remark = ptr(r)
	}

	addFacilities(h, htmlList(digStr(main, "HotelFacilities"))...)
	addAmenities(h, htmlList(digStr(main, "RoomFacilities"))...)

	for i, p := range digList(main, "Pictures", "Picture") {
		addPhoto(h, fmt.Sprint(i+1), digStr(p, "@Description"), str(p))
	}

	if n := digStr(main, "RoomCount"); n != "" {
		room := newRoom()
		room.Title = ptr("Standard")
		room.NoOfRoom = ptr(n)
		room.Amenities = appendNonEmpty(room.Amenities, htmlList(digStr(main, "RoomFacilities"))...)
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
