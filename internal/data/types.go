package data

// House is one labelled sale. Price is the median value in thousands.
type House struct {
	Crim    float64 `json:"crim"`
	Zn      float64 `json:"zn"`
	Indus   float64 `json:"indus"`
	Chas    bool    `json:"chas"`
	Nox     float64 `json:"nox"`
	Rm      float64 `json:"rm"`
	Age     float64 `json:"age"`
	Dis     float64 `json:"dis"`
	Rad     float64 `json:"rad"`
	Tax     float64 `json:"tax"`
	Ptratio float64 `json:"ptratio"`
	B       float64 `json:"b"`
	Lstat   float64 `json:"lstat"`
	Price   float64 `json:"medv"`
}

var Header = []string{"crim", "zn", "indus", "chas", "nox", "rm", "age", "dis", "rad", "tax", "ptratio", "b", "lstat", "medv"}
