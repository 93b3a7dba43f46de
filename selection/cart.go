package selection

import "fmt"

// Cart is the in-memory list of committed lines of one order.
type Cart struct {
	lines []Line
}

// Add appends a line and returns its index.
func (c *Cart) Add(l Line) int {
	c.lines = append(c.lines, l)
	return len(c.lines) - 1
}

func (c *Cart) Replace(index int, l Line) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.lines[index] = l
	return nil
}

func (c *Cart) Remove(index int) error {
	if err := c.check(index); err != nil {
		return err
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

func (c *Cart) Line(index int) (Line, error) {
	if err := c.check(index); err != nil {
		return Line{}, err
	}
	return c.lines[index], nil
}

// Lines returns a copy of the committed lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Price()
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) check(index int) error {
	if index < 0 || index >= len(c.lines) {
		return fmt.Errorf("%w: %d (cart has %d lines)", ErrLineIndex, index, len(c.lines))
	}
	return nil
}
