package viz

import (
	"net/url"
	"strconv"

	"github.com/san-kum/flakesim/internal/config"
)

// field is one named input of the parameter form.
type field struct {
	name  string
	label string
	step  float64
	value string
}

// Form mirrors the page form: six named inputs edited in place and read back on submit.
type Form struct {
	fields      []field
	checked     bool
	selected    int
	initialized bool
}

func NewForm() *Form {
	return &Form{
		fields: []field{
			{name: config.KeyLayers, label: "layers", step: 1},
			{name: config.KeyBranches, label: "branches", step: 1},
			{name: config.KeySize, label: "size", step: 10},
			{name: config.KeyBaseAngle, label: "base angle", step: 15},
			{name: config.KeySpeed, label: "speed", step: 1},
			{name: config.KeyDirection, label: "direction"},
		},
	}
}

// Populate fills the inputs from p. Only the first call has an effect.
func (f *Form) Populate(p config.Params) {
	if f.initialized {
		return
	}
	f.initialized = true
	f.Reload(p)
}

// Reload overwrites every input with p.
func (f *Form) Reload(p config.Params) {
	v := p.Values()
	for i := range f.fields {
		if f.fields[i].name == config.KeyDirection {
			continue
		}
		f.fields[i].value = v.Get(f.fields[i].name)
	}
	f.checked = p.Direction
}

func (f *Form) Next() { f.selected = (f.selected + 1) % len(f.fields) }
func (f *Form) Prev() { f.selected = (f.selected + len(f.fields) - 1) % len(f.fields) }

func (f *Form) Selected() string { return f.fields[f.selected].name }

// Adjust moves the selected input by dir steps; on the direction checkbox it toggles.
func (f *Form) Adjust(dir int) {
	fd := &f.fields[f.selected]
	if fd.name == config.KeyDirection {
		f.checked = !f.checked
		return
	}
	v, err := strconv.ParseFloat(fd.value, 64)
	if err != nil {
		v = 0
	}
	fd.value = strconv.FormatFloat(v+float64(dir)*fd.step, 'f', -1, 64)
}

func (f *Form) Toggle() { f.checked = !f.checked }

// Type appends a character to the selected input; backspace with r == 0.
func (f *Form) Type(r rune) {
	fd := &f.fields[f.selected]
	if fd.name == config.KeyDirection {
		return
	}
	if r == 0 {
		if n := len(fd.value); n > 0 {
			fd.value = fd.value[:n-1]
		}
		return
	}
	fd.value += string(r)
}

// Values returns the form data as a browser would submit it: an unchecked box is absent.
func (f *Form) Values() url.Values {
	v := url.Values{}
	for _, fd := range f.fields {
		if fd.name == config.KeyDirection {
			if f.checked {
				v.Set(fd.name, "on")
			}
			continue
		}
		v.Set(fd.name, fd.value)
	}
	return v
}
