package main

import (
	"bytes"
	"fmt"
	"html/template"
	"image/png"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lilab-monash/protpeptigram/density"
	"github.com/lilab-monash/protpeptigram/immunoviz"
	"github.com/lilab-monash/protpeptigram/pepmap"
)

const ThumbWidth = 320

type proteinRow struct {
	ID          string
	Description string
	Length      int
	Placements  int
	Windows     int
	URL         string
	ThumbURL    string
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	windowCount := make(map[string]int)
	for _, wdw := range h.Global.windows {
		windowCount[wdw.Protein]++
	}

	placements := 0
	rows := make([]proteinRow, 0, len(h.Global.proteinOrder))
	for _, id := range h.Global.proteinOrder {
		rec := h.Global.proteins[id]
		ms := h.Global.matches[id]
		placements += len(ms)

		row := proteinRow{
			ID:          id,
			Description: rec.Description,
			Length:      len(rec.Seq),
			Placements:  len(ms),
			Windows:     windowCount[id],
		}

		u, err := h.router.Get("protein").URL("protein", id)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}
		row.URL = u.String()

		if len(ms) > 0 {
			u, err := h.router.Get("thumb").URL("protein", id)
			if err != nil {
				HTTPError(h, w, r, err)
				return
			}
			row.ThumbURL = u.String()
		}

		rows = append(rows, row)
	}

	var rowsURL string
	if h.Global.rows != nil {
		u, err := h.router.Get("rows").URL("offset", "0")
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}
		rowsURL = u.String()
	}

	output := struct {
		PeptidePath string
		FastaPath   string
		LoadedAt    time.Time
		Peptides    int
		Samples     int
		Placements  int
		Proteins    []proteinRow
		RowsURL     string
	}{
		h.Global.PeptidePath,
		h.Global.FastaPath,
		h.Global.LoadedAt,
		len(h.Global.peptides),
		len(h.Global.sampleNames),
		placements,
		rows,
		rowsURL,
	}

	Render(h, w, r, h.Global.Site, "index.html", output, nil)
}

func (h *handler) ProteinPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["protein"]

	rec, ok := h.Global.proteins[id]
	if !ok {
		HTTPError(h, w, r, fmt.Errorf("%s is not in the FASTA", id))
		return
	}

	ms := h.Global.matches[id]

	var windows []density.Window
	for _, wdw := range h.Global.windows {
		if wdw.Protein == id {
			windows = append(windows, wdw)
		}
	}

	type sampleChart struct {
		Sample string
		Title  string
		URL    string
	}

	charts := make([]sampleChart, 0)
	for _, p := range h.Global.profiles {
		if p.Protein != id {
			continue
		}

		u, err := h.router.Get("profile").URL("protein", id, "sample", p.Sample)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}

		title := p.Sample
		if s, ok := h.Global.cfg.Samples[p.Sample]; ok {
			title = s.Title()
		}

		charts = append(charts, sampleChart{Sample: p.Sample, Title: title, URL: u.String()})
	}

	var figureURL string
	if len(ms) > 0 {
		u, err := h.router.Get("peptigram").URL("protein", id)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}
		figureURL = u.String()
	}

	output := struct {
		Protein     string
		Description string
		Length      int
		Placements  int
		Coverage    float64
		FigureURL   string
		Charts      []sampleChart
		Windows     []density.Window
	}{
		id,
		rec.Description,
		len(rec.Seq),
		len(ms),
		100 * pepmap.CoverageFraction(ms, len(rec.Seq)),
		figureURL,
		charts,
		windows,
	}

	Render(h, w, r, id, "protein.html", output, nil)
}

func (h *handler) PeptigramPNG(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["protein"]

	imgBytes, err := h.renderProtein(id)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(imgBytes)
}

func (h *handler) PeptigramThumb(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["protein"]

	imgBytes, err := h.renderProtein(id)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	img, err := immunoviz.ImageFromBytes(imgBytes)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, immunoviz.Thumbnail(img, ThumbWidth)); err != nil {
		h.Global.log.Println(GetIPAddress(r), r.URL.Path, err)
	}
}

// renderProtein rasterizes one protein's peptigram, memoizing the PNG so
// revisits and thumbnails don't redraw it.
func (h *handler) renderProtein(id string) ([]byte, error) {
	if imgBytes, ok := h.Global.CachedImage(id); ok {
		return imgBytes, nil
	}

	rec, ok := h.Global.proteins[id]
	if !ok {
		return nil, fmt.Errorf("%s is not in the FASTA", id)
	}

	if len(h.Global.matches[id]) == 0 {
		return nil, fmt.Errorf("no peptides were placed on %s", id)
	}

	data := immunoviz.CollectPlotData(id, len(rec.Seq), h.Global.matches, h.Global.profiles, h.Global.windows)

	img, err := immunoviz.RenderImage(data, h.Global.cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	h.Global.CacheImage(id, buf.Bytes())

	return buf.Bytes(), nil
}

func (h *handler) ProfileChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["protein"]
	sample := mux.Vars(r)["sample"]

	for _, p := range h.Global.profiles {
		if p.Protein != id || p.Sample != sample {
			continue
		}

		imgBytes, err := immunoviz.ProfilePNG(p, 0, 0)
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write(imgBytes)
		return
	}

	HTTPError(h, w, r, fmt.Errorf("no density profile for %s in sample %s", id, sample))
}

func (h *handler) Rows(w http.ResponseWriter, r *http.Request) {
	if h.Global.rows == nil {
		HTTPError(h, w, r, fmt.Errorf("the raw table browser needs a local uncompressed --peptides file"))
		return
	}

	offsetVar := mux.Vars(r)["offset"]
	offset, err := strconv.Atoi(offsetVar)
	if err != nil {
		HTTPError(h, w, r, fmt.Errorf("No offset passed"))
		return
	}
	if offset < 0 {
		offset = 0
	}

	// Row 0 is the header; offset counts data rows below it
	total := h.Global.rows.Len() - 1
	if offset >= total {
		HTTPError(h, w, r, fmt.Errorf("Offset was %d, out of range of the %d table rows", offset, total))
		return
	}

	header, err := h.Global.rows.Read(0)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	rows, err := h.Global.rows.ReadRange(offset+1, h.Global.PageSize)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}

	var prevURL, nextURL string
	if offset > 0 {
		prev := offset - h.Global.PageSize
		if prev < 0 {
			prev = 0
		}

		u, err := h.router.Get("rows").URL("offset", strconv.Itoa(prev))
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}
		prevURL = u.String()
	}
	if offset+h.Global.PageSize < total {
		u, err := h.router.Get("rows").URL("offset", strconv.Itoa(offset+h.Global.PageSize))
		if err != nil {
			HTTPError(h, w, r, err)
			return
		}
		nextURL = u.String()
	}

	output := struct {
		PeptidePath string
		Header      []string
		Rows        [][]string
		Offset      int
		Total       int
		PrevURL     string
		NextURL     string
	}{
		h.Global.PeptidePath,
		header,
		rows,
		offset,
		total,
		prevURL,
		nextURL,
	}

	Render(h, w, r, "Raw Table", "rows.html", output, nil)
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	goroutines := fmt.Sprintf("%d goroutines are currently active\n", runtime.NumGoroutine())

	w.Write([]byte(goroutines))
}

// Render executes the named page template inside the site chrome. A non-nil
// funcs overrides entries of the base FuncMap for this page.
func Render(h *handler, w http.ResponseWriter, r *http.Request, title, templateFilename string, data interface{}, funcs template.FuncMap) {
	tpl := h.Template(templateFilename)
	if funcs != nil {
		tpl = tpl.Funcs(funcs)
	}

	output := struct {
		Site   string
		Title  string
		Assets string
		Now    time.Time
		Data   interface{}
	}{
		h.Global.Site,
		title,
		h.Assets(),
		time.Now(),
		data,
	}

	// Buffer the page so a template error can still yield a clean 500
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, output); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	buf.WriteTo(w)
}

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error) {
	h.Global.log.Println(GetIPAddress(r), r.URL.Path, err)

	http.Error(w, err.Error(), http.StatusInternalServerError)
}
