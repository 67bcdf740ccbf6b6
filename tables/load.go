package tables

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/stats"
)

// Format names a table document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", adferrors.Newf(adferrors.KindFile, "tables.FormatFromPath", "unknown table format for %q", path)
}

// Decode reads a document of the given format from r.
func (d *Decoder) Decode(r io.Reader, format Format) (*stats.Index, *Report, error) {
	switch format {
	case FormatJSON:
		return d.DecodeJSON(r)
	case FormatYAML:
		return d.DecodeYAML(r)
	case FormatCSV:
		return d.DecodeCSV(r, nil)
	}
	return nil, nil, adferrors.Newf(adferrors.KindConfig, "tables.Decode", "unsupported format %q", format)
}

// Load reads the table file at path. An empty format is inferred from the
// file extension.
func (d *Decoder) Load(path string, format Format) (*stats.Index, *Report, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, adferrors.Wrap(err, adferrors.KindFile, "tables.Load", "open "+path)
	}
	defer file.Close()

	return d.Decode(file, format)
}

// Load reads the table file at path with a Decoder that discards logs.
func Load(path string) (*stats.Index, *Report, error) {
	return NewDecoder(nil).Load(path, "")
}

// jsonFloat encodes infinities as the strings "+Inf" and "-Inf", which the
// decoders parse back. JSON has no literal for them.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func criticalJSON(cv stats.CriticalValues) map[string]jsonFloat {
	return map[string]jsonFloat{
		"1%":  jsonFloat(cv.OnePercent),
		"5%":  jsonFloat(cv.FivePercent),
		"10%": jsonFloat(cv.TenPercent),
	}
}

// EncodeJSON writes idx in the document shape read by DecodeJSON. Unset
// critical values are written as their defaults.
func EncodeJSON(w io.Writer, idx *stats.Index) error {
	doc := map[string]interface{}{}

	critical := make(map[string]map[string]jsonFloat, len(idx.Critical))
	for nobs, cv := range idx.Critical {
		critical[sampleSizeKey(nobs)] = criticalJSON(cv.Complete())
	}
	doc[CriticalValuesKey] = critical

	pvalues := make(map[string][][2]jsonFloat, len(idx.PValues))
	for nobs, t := range idx.PValues {
		rows := make([][2]jsonFloat, 0, t.Len())
		for _, p := range t.Points() {
			rows = append(rows, [2]jsonFloat{jsonFloat(p.Statistic), jsonFloat(p.PValue)})
		}
		pvalues[sampleSizeKey(nobs)] = rows
	}
	doc[PValuesKey] = pvalues

	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return adferrors.Wrap(err, adferrors.KindData, "tables.EncodeJSON", "encode document")
	}
	return nil
}

func sampleSizeKey(nobs uint64) string {
	return strconv.FormatUint(nobs, 10)
}
