package features

// SchemaVersion changes whenever the order or meaning of a slot changes.
// Persisted models record it and are refused when it differs.
const SchemaVersion = 1

// NumFeatures is the fixed width of a Vector.
const NumFeatures = 13

// Slot indices, in the column order the price model is trained on.
const (
	Crim = iota
	Zn
	Indus
	Chas
	Nox
	Rm
	Age
	Dis
	Rad
	Tax
	Ptratio
	B
	Lstat
)

type Kind int

const (
	// Numeric fields must lie in the closed range [Min, Max].
	Numeric Kind = iota
	// Binary fields are chosen from two labels and encoded as 1 (Yes) or 0 (No).
	Binary
)

// Widget is the form control the field is rendered with.
type Widget string

const (
	Slider Widget = "slider"
	Number Widget = "number"
	Select Widget = "select"
)

const (
	Yes = "Yes"
	No  = "No"
)

type Field struct {
	Name   string
	Label  string
	Kind   Kind
	Widget Widget
	Min    float64
	Max    float64
	Step   float64
}

// Vector is the model input. It is an array, so every holder owns its copy.
type Vector [NumFeatures]float64

// Slice returns the vector as a freshly allocated row.
func (v Vector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

var schema = [NumFeatures]Field{
	Crim:    {Name: "crim", Label: "Criminality rate %", Kind: Numeric, Widget: Slider, Min: 0, Max: 100, Step: 1},
	Zn:      {Name: "zn", Label: "Proportion of residential zone in the area %", Kind: Numeric, Widget: Slider, Min: 0, Max: 100, Step: 1},
	Indus:   {Name: "indus", Label: "Proportion of non-retail business in the area %", Kind: Numeric, Widget: Slider, Min: 0, Max: 100, Step: 1},
	Chas:    {Name: "chas", Label: "Near river?", Kind: Binary, Widget: Select, Min: 0, Max: 1, Step: 1},
	Nox:     {Name: "nox", Label: "Nitrogen oxides concentration (parts per 10 million) (the lesser the healthier)", Kind: Numeric, Widget: Slider, Min: 0, Max: 1, Step: 0.01},
	Rm:      {Name: "rm", Label: "Number of bedrooms", Kind: Numeric, Widget: Number, Min: 1, Max: 10, Step: 1},
	Age:     {Name: "age", Label: "Age of property", Kind: Numeric, Widget: Number, Min: 1, Max: 100, Step: 1},
	Dis:     {Name: "dis", Label: "Distance to employment center in km", Kind: Numeric, Widget: Number, Min: 1, Max: 100, Step: 1},
	Rad:     {Name: "rad", Label: "Accessibility to the radial highways (the higher the closer)", Kind: Numeric, Widget: Slider, Min: 0, Max: 1, Step: 0.01},
	Tax:     {Name: "tax", Label: "Tax rate %", Kind: Numeric, Widget: Number, Min: 0, Max: 100, Step: 1},
	Ptratio: {Name: "ptratio", Label: "Proportion of student compare to teacher in the area %", Kind: Numeric, Widget: Slider, Min: 0, Max: 100, Step: 1},
	B:       {Name: "b", Label: "Demographic proportion of the population", Kind: Numeric, Widget: Slider, Min: 0, Max: 1000, Step: 1},
	Lstat:   {Name: "lstat", Label: "Economic status of the population {0 = rich < range < 100 = poor} %", Kind: Numeric, Widget: Slider, Min: 0, Max: 100, Step: 1},
}

// Fields returns a copy of the schema in slot order.
func Fields() [NumFeatures]Field { return schema }

// Names returns the slot names in order.
func Names() []string {
	out := make([]string, NumFeatures)
	for i, f := range schema {
		out[i] = f.Name
	}
	return out
}

// Lookup finds a field by name.
func Lookup(name string) (Field, int, bool) {
	for i, f := range schema {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// Default is the value a fresh form starts with: the lower bound for
// numeric fields and Yes for the river question.
func (f Field) Default() string {
	if f.Kind == Binary {
		return Yes
	}
	return formatNum(f.Min)
}
