package normalize

import (
	"sort"

	"hotel_content/internal/domain"
)

func mapHyperGuest(raw any, h *domain.CanonicalHotel) error {
	p, err := object(domain.SupplierHyperGuest, raw)
	if err != nil {
		return err
	}
	if err := setID(h, dig(p, "id")); err != nil {
		return err
	}

	h.Name = digSP(p, "name")
	h.StarRating = cleanStar(dig(p, "rating"))
	h.PropertyType = digSP(p, "propertyType", "name")
	h.Chain = digSP(p, "chain", "name")
	h.DestinationCode = digSP(p, "location", "city", "id")

	loc := digMap(p, "location")
	line1 := digStr(loc, "address")
	city := digStr(loc, "city", "name")
	h.Address = domain.Address{
		Latitude:     digFloat(loc, "latitude"),
		Longitude:    digFloat(loc, "longitude"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		State:        digSP(loc, "region"),
		CountryCode:  digSP(loc, "countryCode"),
		PostalCode:   digSP(loc, "postcode"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, digStr(loc, "postcode"), digStr(loc, "countryCode"))),
		Mapping:      domain.AddressMapping{CityID: digSP(loc, "city", "id")},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(p, "contact", "phone"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(p, "contact", "email"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(p, "contact", "website"))

	h.Policies.Checkin.BeginTime = digSP(p, "settings", "checkIn")
	h.Policies.Checkout.Time = digSP(p, "settings", "checkOut")

	for _, d := range digList(p, "descriptions") {
		addDescription(h, digStr(d, "type"), htmlText(digStr(d, "description")))
	}
	for _, f := range digList(p, "facilities") {
		if digStr(f, "type") == "room" {
			addAmenities(h, firstNonEmpty(digStr(f, "name"), str(f)))
			continue
		}
		addFacilities(h, firstNonEmpty(digStr(f, "name"), str(f)))
	}

	images := append([]any(nil), digList(p, "images")...)
	sort.SliceStable(images, func(i, j int) bool {
		return priority(images[i]) < priority(images[j])
	})
	for _, img := range images {
		addPhoto(h, digStr(img, "id"), digStr(img, "description"), digStr(img, "uri"))
	}

	for _, r := range digList(p, "rooms") {
		room := newRoom()
		room.RoomID = ptr(firstNonEmpty(digStr(r, "id"), digStr(r, "code")))
		room.Title = digSP(r, "name")
		room.Description = sp(htmlText(digStr(r, "descriptions", 0, "description")))
		s := digMap(r, "settings")
		room.MaxAllowed = domain.MaxAllowed{
			Total:    digSP(s, "maxOccupancy"),
			Adults:   digSP(s, "maxAdultsNumber"),
			Children: digSP(s, "maxChildrenNumber"),
			Infant:   digSP(s, "maxInfantsNumber"),
		}
		room.RoomSize = digSP(s, "size")
		room.NoOfRoom = digSP(s, "numberOfRooms")
		for _, b := range digList(r, "beds") {
			room.BedType = append(room.BedType, bed(digStr(b, "type"), digStr(b, "type"), "", digStr(b, "quantity")))
		}
		for _, f := range digList(r, "facilities") {
			room.Amenities = appendNonEmpty(room.Amenities, firstNonEmpty(digStr(f, "name"), str(f)))
		}
		if imgs := digList(r, "images"); len(imgs) > 0 {
			room.RoomPic = digSP(imgs[0], "uri")
		}
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}

// priority sorts images without a priority last.
func priority(img any) float64 {
	if f := digFloat(img, "priority"); f != nil {
		return *f
	}
	return 1 << 30
}
