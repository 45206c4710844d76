package normalize

import "hotel_content/internal/domain"

func mapJuniper(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierJuniper, raw)
	if err != nil {
		return err
	}
	body := soapBody(m)
	if s, ok := findFirst(body, "HotelContentResult").(string); ok {
		body, err = innerDocument(domain.SupplierJuniper+".HotelContentResult", s)
		if err != nil {
			return err
		}
	}
	hc := dig(findFirst(body, "HotelContent"), 0)
	if err := setID(h, dig(hc, "@Code")); err != nil {
		return err
	}

	h.Name = digSP(hc, "HotelName")
	h.StarRating = starFromText(digStr(hc, "HotelCategory"))
	h.PropertyType = digSP(hc, "HotelType")
	h.DestinationCode = digSP(hc, "Zone", "@JPDCode")
	h.Chain = digSP(hc, "HotelChain", "Name")

	addr := digMap(hc, "Address")
	line1 := digStr(addr, "Address")
	city := firstNonEmpty(digStr(hc, "Zone", "Name"), digStr(addr, "City"))
	h.Address = domain.Address{
		Latitude:     digFloat(addr, "Latitude"),
		Longitude:    digFloat(addr, "Longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		CountryCode:  digSP(hc, "Zone", "@CountryCode"),
		PostalCode:   digSP(addr, "PostalCode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, digStr(addr, "PostalCode"))),
		Mapping: domain.AddressMapping{
			AreaID: digSP(hc, "Zone", "@Code"),
		},
	}

	contact := digMap(hc, "ContactInfo")
	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, stringsOf(digList(contact, "PhoneNumbers", "PhoneNumber"))...)
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(contact, "Fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(contact, "Email"))

	h.Policies.Checkin.BeginTime = digSP(hc, "TimeInformation", "CheckTime", "@CheckIn")
	h.Policies.Checkout.Time = digSP(hc, "TimeInformation", "CheckTime", "@CheckOut")

	for _, d := range digList(hc, "Descriptions", "Description") {
		addDescription(h, digStr(d, "@Type"), htmlText(str(d)))
	}
	for _, f := range digList(hc, "Features", "Feature") {
		if digStr(f, "@Type") == "Room" {
			addAmenities(h, str(f))
			continue
		}
		addFacilities(h, str(f))
	}
	for _, img := range digList(hc, "Images", "Image") {
		addPhoto(h, digStr(img, "@Type"), digStr(img, "Title"), digStr(img, "FileName"))
	}
	for _, r := range digList(hc, "HotelRooms", "HotelRoom") {
		room := newRoom()
		room.RoomID = ptr(firstNonEmpty(digStr(r, "@Code"), digStr(r, "@Source")))
		room.Title = digSP(r, "Name")
		room.Description = sp(htmlText(digStr(r, "Description")))
		room.MaxAllowed = domain.MaxAllowed{
			Total:    digSP(r, "RoomOccupancy", "@MaxOccupancy"),
			Adults:   digSP(r, "RoomOccupancy", "@MaxAdults"),
			Children: digSP(r, "RoomOccupancy", "@MaxChildren"),
		}
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
