package dashboard

// Controller tracks the current filter for a single viewer and recomputes the
// yearly panel on every selection. It is not safe for concurrent use.
type Controller struct {
	d     *Dashboard
	state State
}

// NewController starts in the unfiltered state.
func NewController(d *Dashboard) *Controller {
	return &Controller{d: d, state: Unfiltered}
}

// State returns the current filter.
func (c *Controller) State() State { return c.state }

// Current returns a render request for the current state without changing it.
func (c *Controller) Current() RenderRequest { return c.d.Yearly(c.state) }

// Select transitions to the state for selection and returns the recomputed
// yearly panel.
func (c *Controller) Select(selection string) RenderRequest {
	c.state = c.d.Resolve(selection)
	return c.d.Yearly(c.state)
}
