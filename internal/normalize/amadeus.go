package normalize

import "hotel_content/internal/domain"

type amadeusImage struct {
	category, dimension, original, url, caption string
}

func mapAmadeus(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierAmadeus, raw)
	if err != nil {
		return err
	}
	content := dig(findFirst(soapBody(m), "HotelDescriptiveContent"), 0)
	if err := setID(h, dig(content, "@HotelCode")); err != nil {
		return err
	}

	h.Name = digSP(content, "@HotelName")
	h.Chain = digSP(content, "@ChainCode")
	h.Brand = digSP(content, "@BrandCode")
	h.DestinationCode = digSP(content, "@HotelCityCode")
	info := digMap(content, "HotelInfo")
	h.PropertyType = digSP(info, "CategoryCodes", "HotelCategory", 0, "@Code")
	h.StarRating = cleanStar(dig(content, "AffiliationInfo", "Awards", "Award", 0, "@Rating"))

	addr := dig(content, "ContactInfos", "ContactInfo", 0, "Addresses", "Address", 0)
	lines := stringsOf(digList(addr, "AddressLine"))
	city := digStr(addr, "CityName")
	postal := digStr(addr, "PostalCode")
	country := digStr(addr, "CountryName")
	countryCode := digStr(addr, "CountryName", "@Code")
	h.Address = domain.Address{
		Latitude:     digFloat(info, "Position", "@Latitude"),
		Longitude:    digFloat(info, "Position", "@Longitude"),
		AddressLine1: ptr(firstOf(lines)),
		AddressLine2: ptr(secondOf(lines)),
		City:         ptr(city),
		State:        digSP(addr, "StateProv", "@StateCode"),
		Country:      ptr(country),
		CountryCode:  ptr(countryCode),
		PostalCode:   ptr(postal),
		FullAddress:  ptr(joinNonEmpty(", ", append(lines, city, postal, country)...)),
	}

	contact := dig(content, "ContactInfos", "ContactInfo", 0)
	for _, p := range digList(contact, "Phones", "Phone") {
		num := digStr(p, "@PhoneNumber")
		if digStr(p, "@PhoneTechType") == "3" {
			h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, num)
		} else {
			h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, num)
		}
	}
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, stringsOf(digList(contact, "Emails", "Email"))...)
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, stringsOf(digList(contact, "URLs", "URL"))...)

	policy := dig(content, "Policies", "Policy", 0)
	h.Policies.Checkin.BeginTime = digSP(policy, "PolicyInfo", "@CheckInTime")
	h.Policies.Checkout.Time = digSP(policy, "PolicyInfo", "@CheckOutTime")
	h.Policies.Pets = digSP(policy, "PetsPolicies", "PetsPolicy", 0, "Description", "Text")

	for _, s := range digList(info, "Services", "Service") {
		addFacilities(h, firstNonEmpty(digStr(s, "DescriptiveText"), digStr(s, "@CodeDetail")))
	}

	for _, gr := range digList(content, "FacilityInfo", "GuestRooms", "GuestRoom") {
		room := newRoom()
		room.RoomID = ptr(firstNonEmpty(digStr(gr, "TypeRoom", "@RoomTypeCode"), digStr(gr, "@Code")))
		room.Title = ptr(firstNonEmpty(digStr(gr, "@RoomTypeName"), digStr(gr, "TypeRoom", "@Name")))
		room.MaxAllowed.Total = digSP(gr, "@MaxOccupancy")
		room.MaxAllowed.Adults = digSP(gr, "@MaxAdultOccupancy")
		room.MaxAllowed.Children = digSP(gr, "@MaxChildOccupancy")
		for _, a := range digList(gr, "Amenities", "Amenity") {
			room.Amenities = appendNonEmpty(room.Amenities, firstNonEmpty(digStr(a, "@CodeDetail"), digStr(a, "DescriptiveText")))
		}
		h.RoomType = append(h.RoomType, room)
	}

	var images []amadeusImage
	for _, md := range digList(content, "MultimediaDescriptions", "MultimediaDescription") {
		for _, item := range digList(md, "ImageItems", "ImageItem") {
			caption := digStr(item, "Description", "@Caption")
			for _, f := range digList(item, "ImageFormat") {
				images = append(images, amadeusImage{
					category:  digStr(item, "@Category"),
					dimension: digStr(f, "@DimensionCategory"),
					original:  digStr(f, "@IsOriginalIndicator"),
					url:       digStr(f, "URL"),
					caption:   caption,
				})
			}
		}
		for _, t := range digList(md, "TextItems", "TextItem") {
			addDescription(h, digStr(t, "@Title"), htmlText(digStr(t, "Description")))
		}
	}
	for _, img := range images {
		addPhoto(h, img.category, img.caption, img.url)
	}
	h.PrimaryPhoto = amadeusPrimary(images)

	for _, rp := range digList(content, "AreaInfo", "RefPoints", "RefPoint") {
		p := placeAt(digStr(rp, "@RefPointCategoryCode"), firstNonEmpty(digStr(rp, "@Name"), str(rp)), digStr(rp, "@Distance"))
		if digStr(rp, "@RefPointCategoryCode") == "5" {
			h.NearestAirports = append(h.NearestAirports, p)
			continue
		}
		h.PointOfInterests = append(h.PointOfInterests, p)
	}
	return nil
}

// amadeusPrimary applies the category "1", dimension "J", original image
// preference chain, then falls back to the first image.
func amadeusPrimary(images []amadeusImage) *string {
	rules := []func(amadeusImage) bool{
		func(i amadeusImage) bool { return i.category == "1" },
		func(i amadeusImage) bool { return i.dimension == "J" },
		func(i amadeusImage) bool { return i.original == "true" },
	}
	for _, match := range rules {
		for _, img := range images {
			if img.url != "" && match(img) {
				return ptr(img.url)
			}
		}
	}
	for _, img := range images {
		if img.url != "" {
			return ptr(img.url)
		}
	}
	return nil
}
