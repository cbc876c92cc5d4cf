package web

import (
	"strconv"

	"houseprice/internal/features"
)

const (
	pageTitle       = "House Price Prediction"
	pageHeader      = "House Price Prediction in South Jakarta"
	pageDescription = `We understand that finding the right price for your dreamhouse is very difficult! Especially if this is your first time buying a house.
Use this app to predict the price of a house based on various features like the number of bedrooms, bathrooms, area, and more.
Simply input the details and click "Predict" to estimate the price of the house.`
)

var columns = [2][]string{
	{"rm", "age", "dis", "tax", "chas", "rad", "ptratio"},
	{"crim", "zn", "indus", "lstat", "b", "nox"},
}

type fieldView struct {
	Name    string
	Label   string
	Widget  string
	Min     string
	Max     string
	Step    string
	Value   string
	Options []string
	Error   string
}

type page struct {
	Title       string
	Header      string
	Description string
	Columns     [2][]fieldView
	Price       string
	Error       string
}

// newPage lays the schema out in two columns, filling in submitted values
// and per-field messages. Fields without a submitted value show defaults.
func newPage(values map[string]string, fieldErrs map[string]string) page {
	pg := page{Title: pageTitle, Header: pageHeader, Description: pageDescription}
	for c, names := range columns {
		for _, name := range names {
			f, _, ok := features.Lookup(name)
			if !ok {
				continue
			}
			fv := fieldView{
				Name:   f.Name,
				Label:  f.Label,
				Widget: string(f.Widget),
				Min:    num(f.Min),
				Max:    num(f.Max),
				Step:   num(f.Step),
				Value:  f.Default(),
				Error:  fieldErrs[f.Name],
			}
			if v, ok := values[f.Name]; ok {
				fv.Value = v
			}
			if f.Kind == features.Binary {
				fv.Options = []string{features.Yes, features.No}
			}
			pg.Columns[c] = append(pg.Columns[c], fv)
		}
	}
	return pg
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
