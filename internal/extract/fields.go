package extract

// ShipmentFields is the normalized shipment record produced by the pipeline.
// Every field is a plain string; the empty string means "absent". Callers
// never see a partially-filled struct mixed across attempts; each attempt
// rebuilds the whole value.
type ShipmentFields struct {
	TruckNumber string `json:"truckNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
	Weight      string `json:"weight"`
	Description string `json:"description"`
	Name        string `json:"name"`
}

// IsComplete reports whether all mandatory fields are present. From and Name
// are optional and do not count.
func (f ShipmentFields) IsComplete() bool {
	return f.TruckNumber != "" && f.To != "" && f.Weight != "" && f.Description != ""
}

// IsEmpty reports whether extraction produced nothing at all, which is how
// callers observe failure.
func (f ShipmentFields) IsEmpty() bool {
	return f == ShipmentFields{}
}
