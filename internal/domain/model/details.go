package model

type (
	// Details holds the attributes that only make sense for one device category.
	// Each implementation is one variant of the tagged union keyed by DeviceType.
	Details interface {
		Accept(visitor DetailsVisitor)
	}

	// DetailsVisitor must handle every variant. Adding a variant means adding a
	// method here, which every consumer then has to implement.
	DetailsVisitor interface {
		VisitComputer(details ComputerDetails)
		VisitCamera(details CameraDetails)
		VisitGeneral(details GeneralDetails)
	}

	ComputerDetails struct {
		CPU     string
		RAM     string
		Storage string
		OS      string
	}

	CameraDetails struct {
		SensorType string
		LensMount  string
		Megapixels *float64
		FilmType   string
	}

	// GeneralDetails covers appliances and miscellaneous items.
	GeneralDetails struct {
		BatteryLife  string
		Connectivity string
	}

	// DetailFields is the flat, untagged union of every type-specific attribute,
	// as it appears on the wire and in the database.
	DetailFields struct {
		CPU          string
		RAM          string
		Storage      string
		OS           string
		SensorType   string
		LensMount    string
		Megapixels   *float64
		FilmType     string
		BatteryLife  string
		Connectivity string
	}

	fieldsCollector struct {
		fields DetailFields
	}
)

func (d ComputerDetails) Accept(visitor DetailsVisitor) { visitor.VisitComputer(d) }
func (d CameraDetails) Accept(visitor DetailsVisitor)   { visitor.VisitCamera(d) }
func (d GeneralDetails) Accept(visitor DetailsVisitor)  { visitor.VisitGeneral(d) }

// NewDetails selects the variant for deviceType and keeps only the fields that
// belong to it. Anything that is neither a computer nor a camera is general.
func NewDetails(deviceType DeviceType, fields DetailFields) Details {
	switch deviceType.Canonical() {
	case DeviceTypeComputer:
		return ComputerDetails{
			CPU:     fields.CPU,
			RAM:     fields.RAM,
			Storage: fields.Storage,
			OS:      fields.OS,
		}
	case DeviceTypeCamera:
		return CameraDetails{
			SensorType: fields.SensorType,
			LensMount:  fields.LensMount,
			Megapixels: fields.Megapixels,
			FilmType:   fields.FilmType,
		}
	default:
		return GeneralDetails{
			BatteryLife:  fields.BatteryLife,
			Connectivity: fields.Connectivity,
		}
	}
}

// FieldsOf flattens details back into the untagged union.
func FieldsOf(details Details) DetailFields {
	if details == nil {
		return DetailFields{}
	}

	collector := &fieldsCollector{}
	details.Accept(collector)

	return collector.fields
}

func (c *fieldsCollector) VisitComputer(d ComputerDetails) {
	c.fields.CPU = d.CPU
	c.fields.RAM = d.RAM
	c.fields.Storage = d.Storage
	c.fields.OS = d.OS
}

func (c *fieldsCollector) VisitCamera(d CameraDetails) {
	c.fields.SensorType = d.SensorType
	c.fields.LensMount = d.LensMount
	c.fields.Megapixels = d.Megapixels
	c.fields.FilmType = d.FilmType
}

func (c *fieldsCollector) VisitGeneral(d GeneralDetails) {
	c.fields.BatteryLife = d.BatteryLife
	c.fields.Connectivity = d.Connectivity
}
