package uci

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var errOutOfRange = errors.New("argument out of range")

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = v
	return nil
}

// DurationOption is exposed to the GUI as a spin in milliseconds.
type DurationOption struct {
	Name  string
	Min   time.Duration
	Max   time.Duration
	Value *time.Duration
}

func (opt *DurationOption) UciName() string {
	return opt.Name
}

func (opt *DurationOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", opt.Value.Milliseconds(), opt.Min.Milliseconds(), opt.Max.Milliseconds())
}

func (opt *DurationOption) Set(s string) error {
	ms, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	var v = time.Duration(ms) * time.Millisecond
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = v
	return nil
}

// FloatOption is a UCI string option holding a decimal number.
type FloatOption struct {
	Name  string
	Min   float64
	Max   float64
	Value *float64
}

func (opt *FloatOption) UciName() string {
	return opt.Name
}

func (opt *FloatOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "string", strconv.FormatFloat(*opt.Value, 'g', -1, 64))
}

func (opt *FloatOption) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = v
	return nil
}
