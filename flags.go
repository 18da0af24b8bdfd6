package dimuplot

import (
	"fmt"
	"strconv"
	"strings"
)

type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, value)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

type StringArrayFlags struct {
	Array   []string
	beenSet bool
}

func (f *StringArrayFlags) Set(value string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, value)
	return nil
}

func (f *StringArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// Window is one zoomed histogram range given on the command line as
// name:min:max:bins.
type Window struct {
	Name     string
	Min, Max float64
	Bins     int
}

type WindowFlags struct {
	Windows []Window
	beenSet bool
}

func (f *WindowFlags) Set(valueStr string) error {
	parts := strings.Split(valueStr, ":")
	if len(parts) != 4 {
		return fmt.Errorf("expected name:min:max:bins, got %q", valueStr)
	}

	min, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return err
	}
	max, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return err
	}
	bins, err := strconv.Atoi(parts[3])
	if err != nil {
		return err
	}
	if max <= min || bins < 1 {
		return fmt.Errorf("invalid window %q", valueStr)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Windows = nil
	}

	f.Windows = append(f.Windows, Window{parts[0], min, max, bins})
	return nil
}

func (f *WindowFlags) String() string {
	return fmt.Sprint(f.Windows)
}
