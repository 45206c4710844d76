package normalize

import "hotel_content/internal/domain"

// Restel hotels carry no pets field; the literal is part of the published record.
const restelPetsPolicy = "Pets are not allowed."

func mapRestel(raw any, h *domain.CanonicalHotel) error {
	m, err := xmlObject(domain.SupplierRestel, raw)
	if err != nil {
		return err
	}
	root := getOr(m, m, "respuesta")
	hotel := dig(root, "parametros", "hotel", 0)
	if err := setID(h, dig(hotel, "codigo_hotel")); err != nil {
		return err
	}

	h.Name = digSP(hotel, "nombre_h")
	h.StarRating = starFromText(digStr(hotel, "categoria"))
	h.PropertyType = digSP(hotel, "tipo_establecimiento")
	h.DestinationCode = digSP(hotel, "codprovincia")

	line1 := digStr(hotel, "direccion")
	city := firstNonEmpty(digStr(hotel, "poblacion"), digStr(hotel, "localidad"))
	country := digStr(hotel, "pais")
	h.Address = domain.Address{
		Latitude:     digFloat(hotel, "latitud"),
		Longitude:    digFloat(hotel, "longitud"),
		AddressLine1: ptr(line1),
		City:         ptr(city),
		State:        digSP(hotel, "provincia"),
		Country:      ptr(country),
		CountryCode:  digSP(hotel, "codigo_pais"),
		PostalCode:   digSP(hotel, "cp"),
		FullAddress:  ptr(joinNonEmpty(", ", line1, city, digStr(hotel, "cp"), digStr(hotel, "provincia"), country)),
		Mapping: domain.AddressMapping{
			ProvinceID: digSP(hotel, "codprovincia"),
			CityID:     digSP(hotel, "codpoblacion"),
		},
	}

	h.Contacts.PhoneNumbers = appendNonEmpty(h.Contacts.PhoneNumbers, digStr(hotel, "telefono"))
	h.Contacts.Fax = appendNonEmpty(h.Contacts.Fax, digStr(hotel, "fax"))
	h.Contacts.EmailAddress = appendNonEmpty(h.Contacts.EmailAddress, digStr(hotel, "mail"))
	h.Contacts.Website = appendNonEmpty(h.Contacts.Website, digStr(hotel, "web"))

	h.Policies.Checkin.BeginTime = digSP(hotel, "checkin")
	h.Policies.Checkout.Time = digSP(hotel, "checkout")
	h.Policies.Pets = ptr(restelPetsPolicy)

	addDescription(h, "Hotel Description", htmlText(digStr(hotel, "desc_hotel")))
	addDescription(h, "How to get there", htmlText(digStr(hotel, "como_llegar")))

	for _, s := range digList(hotel, "servicios", "servicio") {
		addFacilities(h, firstNonEmpty(digStr(s, "desc_serv"), str(s)))
	}
	for i, f := range digList(hotel, "fotos", "foto") {
		addPhoto(h, str(i+1), "", str(f))
	}
	if n := digStr(hotel, "num_hab"); n != "" {
		room := newRoom()
		room.Title = ptr("Standard")
		room.NoOfRoom = ptr(n)
		h.RoomType = append(h.RoomType, room)
	}
	for _, hab := range digList(hotel, "habitaciones", "habitacion") {
		room := newRoom()
		room.RoomID = digSP(hab, "codigo")
		room.Title = digSP(hab, "nombre")
		room.MaxAllowed.Total = digSP(hab, "ocupacion_maxima")
		h.RoomType = append(h.RoomType, room)
	}
	return nil
}
