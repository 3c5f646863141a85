package hw

// SetNMI sets the level of the NMI line. NMI is edge triggered: an interrupt
// is latched when the line goes from deasserted to asserted.
func (c *CPU) SetNMI(asserted bool) {
	if asserted && !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = asserted
}

// SetIRQ sets the level of the IRQ line. IRQ is level triggered and masked by
// the I flag.
func (c *CPU) SetIRQ(asserted bool) {
	c.irqLine = asserted
}

// pollInterrupts reports whether an interrupt sequence must replace the next
// instruction.
func (c *CPU) pollInterrupts() bool {
	return c.nmiPending || (c.irqLine && !c.P.I())
}
