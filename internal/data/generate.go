package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// SyntheticHouses draws n records whose prices follow a fixed hidden
// relationship plus noise. The same seed always yields the same records.
func SyntheticHouses(n int, seed int64) []House {
	rng := rand.New(rand.NewSource(seed))
	out := make([]House, 0, n)
	for i := 0; i < n; i++ {
		h := House{
			Crim:    round(math.Min(100, rng.ExpFloat64()*4), 2),
			Zn:      0,
			Indus:   round(rng.Float64()*30, 2),
			Chas:    rng.Float64() < 0.07,
			Nox:     round(0.35+rng.Float64()*0.5, 3),
			Rm:      round(clamp(rng.NormFloat64()*0.9+6.2, 1, 10), 0),
			Age:     round(clamp(rng.Float64()*100, 1, 100), 0),
			Dis:     round(clamp(rng.ExpFloat64()*4+1, 1, 100), 0),
			Rad:     round(rng.Float64(), 2),
			Tax:     round(rng.Float64()*70+15, 0),
			Ptratio: round(clamp(rng.NormFloat64()*2.2+18.5, 0, 100), 0),
			B:       round(clamp(396-rng.ExpFloat64()*40, 0, 1000), 1),
			Lstat:   round(clamp(rng.ExpFloat64()*9+2, 0, 100), 1),
		}
		if rng.Float64() < 0.3 {
			h.Zn = round(rng.Float64()*100, 0)
		}
		h.Price = round(clamp(price(h)+rng.NormFloat64()*2.5, 5, 50), 1)
		out = append(out, h)
	}
	return out
}

func price(h House) float64 {
	p := 22.0
	p += 5.5 * (h.Rm - 6)
	p -= 0.45 * (h.Lstat - 12)
	p -= 0.12 * h.Crim
	p += 0.02 * h.Zn
	p -= 0.05 * h.Indus
	p -= 12 * (h.Nox - 0.55)
	p -= 0.02 * (h.Age - 65)
	p -= 0.35 * (h.Dis - 4)
	p += 2.5 * h.Rad
	p -= 0.04 * (h.Tax - 40)
	p -= 0.6 * (h.Ptratio - 18)
	p += 0.008 * (h.B - 356)
	if h.Chas {
		p += 3
	}
	return p
}

func GenerateSyntheticHouses(n int, seed int64, outPath string) error {
	return WriteCSV(outPath, SyntheticHouses(n, seed))
}

func WriteCSV(path string, hs []House) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, h := range hs {
		chas := "0"
		if h.Chas {
			chas = "1"
		}
		rec := []string{
			fmtF(h.Crim), fmtF(h.Zn), fmtF(h.Indus), chas, fmtF(h.Nox), fmtF(h.Rm), fmtF(h.Age),
			fmtF(h.Dis), fmtF(h.Rad), fmtF(h.Tax), fmtF(h.Ptratio), fmtF(h.B), fmtF(h.Lstat), fmtF(h.Price),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ReadCSV(path string) ([]House, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no records", path)
	}
	out := make([]House, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(Header) {
			return nil, fmt.Errorf("%s: line %d: want %d columns, got %d", path, i+2, len(Header), len(row))
		}
		vals := make([]float64, len(row))
		for j, s := range row {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d column %s: %w", path, i+2, Header[j], err)
			}
			vals[j] = v
		}
		out = append(out, House{
			Crim: vals[0], Zn: vals[1], Indus: vals[2], Chas: vals[3] == 1, Nox: vals[4],
			Rm: vals[5], Age: vals[6], Dis: vals[7], Rad: vals[8], Tax: vals[9],
			Ptratio: vals[10], B: vals[11], Lstat: vals[12], Price: vals[13],
		})
	}
	return out, nil
}

func fmtF(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

func clamp(f, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, f)) }
