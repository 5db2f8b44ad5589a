package search

import (
	"github.com/mmcdole/darkroom/internal/domain"
)

// Request describes one fetch the caller must perform
type Request struct {
	Seq   uint64 // Issue order, for logging
	Query string
	Page  int
}

// State is the complete view state of a search session
type State struct {
	Query        string
	Page         int // 1-based
	TotalPages   int
	Total        int
	Results      []domain.Photo
	Err          error // Last fetch failure, nil after a success
	Attempted    bool  // An explicit search has been submitted
	Selected     *domain.Photo
	ModalVisible bool
}

// Controller owns a State and reduces user actions and fetch outcomes into it.
// It performs no I/O: actions that need data return a Request.
type Controller struct {
	state    State
	seq      uint64
	inFlight int
}

// NewController creates a controller on page 1 with no results
func NewController() *Controller {
	return &Controller{state: State{Page: 1}}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	s := c.state
	if c.state.Results != nil {
		s.Results = append([]domain.Photo(nil), c.state.Results...)
	}
	return s
}

// Initial starts the automatic startup load. Failures from it stay hidden
// because it does not count as an explicit search.
func (c *Controller) Initial(query string) Request {
	c.state.Query = query
	c.state.Page = 1
	return c.issue()
}

// Submit starts a new search for query from page 1
func (c *Controller) Submit(query string) Request {
	c.state.Query = query
	c.state.Page = 1
	c.state.Attempted = true
	return c.issue()
}

// SelectCategory searches for the category label
func (c *Controller) SelectCategory(cat domain.Category) Request {
	return c.Submit(cat.String())
}

// CanPrev reports whether a previous page exists
func (c *Controller) CanPrev() bool {
	return c.state.Page > 1
}

// CanNext reports whether a next page exists
func (c *Controller) CanNext() bool {
	return c.state.Page < c.state.TotalPages
}

// ChangePage moves by delta (±1). It returns ok=false and leaves the state
// untouched when the target page falls outside [1, TotalPages].
func (c *Controller) ChangePage(delta int) (Request, bool) {
	switch delta {
	case -1:
		if !c.CanPrev() {
			return Request{}, false
		}
	case 1:
		if !c.CanNext() {
			return Request{}, false
		}
	default:
		return Request{}, false
	}
	c.state.Page += delta
	return c.issue(), true
}

// ApplySuccess replaces the result set with page. Responses are applied in
// arrival order, so the last one to resolve wins.
func (c *Controller) ApplySuccess(req Request, page domain.SearchPage) {
	c.settle()
	c.state.Results = page.Photos
	c.state.TotalPages = page.TotalPages
	c.state.Total = page.Total
	c.state.Err = nil

	if c.state.Selected != nil && !c.contains(c.state.Selected.ID) {
		c.state.Selected = nil
		c.state.ModalVisible = false
	}
}

// ApplyFailure records err and keeps the previous results
func (c *Controller) ApplyFailure(req Request, err error) {
	c.settle()
	if err == nil {
		err = domain.ErrFetchFailed
	}
	c.state.Err = err
}

// ErrorVisible reports whether the error line should be shown
func (c *Controller) ErrorVisible() bool {
	return c.state.Err != nil && c.state.Attempted
}

// ErrorMessage returns the user-facing error text, or "" when hidden
func (c *Controller) ErrorMessage() string {
	if !c.ErrorVisible() {
		return ""
	}
	return domain.FetchErrorMessage
}

// Loading reports whether any fetch is still outstanding
func (c *Controller) Loading() bool {
	return c.inFlight > 0
}

// OpenDetail selects photo and shows the modal. Photos not in the current
// result set are ignored.
func (c *Controller) OpenDetail(photo domain.Photo) bool {
	if !c.contains(photo.ID) {
		return false
	}
	p := photo
	c.state.Selected = &p
	c.state.ModalVisible = true
	return true
}

// CloseDetail hides the modal; the selection is kept
func (c *Controller) CloseDetail() {
	c.state.ModalVisible = false
}

func (c *Controller) issue() Request {
	c.seq++
	c.inFlight++
	return Request{Seq: c.seq, Query: c.state.Query, Page: c.state.Page}
}

func (c *Controller) settle() {
	if c.inFlight > 0 {
		c.inFlight--
	}
}

func (c *Controller) contains(id string) bool {
	for i := range c.state.Results {
		if c.state.Results[i].ID == id {
			return true
		}
	}
	return false
}
