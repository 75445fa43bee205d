package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ikeike55momo/schedule/internal/calendar"
	"github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/dto"
	"github.com/ikeike55momo/schedule/internal/service"
)

const hoverWriteWait = 5 * time.Second

// HoverHandler serves the live preview socket. Each connection owns one
// calendar.Hover. The panel is loaded on every enter and reused only for
// move frames over the same hovered date.
type HoverHandler struct {
	svc      *service.CalendarService
	upgrader websocket.Upgrader
}

func NewHoverHandler(svc *service.CalendarService) *HoverHandler {
	return &HoverHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve godoc
// @Summary      Live hover preview (websocket)
// @Description  Client frames {type: enter|move|leave|panel_leave, date, x, y}; server replies show or hide.
// @Description  With year and month set, dates outside that month are not previewed.
// @Tags         calendar
// @Security     BearerAuth
// @Param        access_token  query  string  false  "Session token for clients that cannot set headers"
// @Param        mode          query  string  false  "personal or team"  Enums(personal, team)
// @Param        year          query  int     false  "Displayed year"
// @Param        month         query  int     false  "Displayed month"
// @Success      101
// @Router       /calendar/hover [get]
func (h *HoverHandler) Serve(c *gin.Context) {
	mode, ok := viewMode(c)
	if !ok {
		return
	}
	var (
		year  int
		month time.Month
	)
	if c.Query("year") != "" || c.Query("month") != "" {
		ch := CalendarHandler{svc: h.svc}
		if year, month, ok = ch.monthQuery(c); !ok {
			return
		}
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("hover upgrade: %v", err)
		return
	}
	defer conn.Close()

	s := &hoverSession{
		conn:   conn,
		svc:    h.svc,
		userID: userID(c),
		mode:   mode,
		year:   year,
		month:  month,
	}
	s.run(c.Request.Context())
}

type hoverSession struct {
	conn    *websocket.Conn
	svc     *service.CalendarService
	userID  string
	mode    domain.ViewMode
	year    int
	month   time.Month
	hover   calendar.Hover
	current calendar.Panel // hovered date's panel, zero when hidden
}

func (s *hoverSession) run(ctx context.Context) {
	for {
		var f dto.HoverFrame
		if err := s.conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("hover read: %v", err)
			}
			return
		}
		if err := s.handle(ctx, f); err != nil {
			log.Printf("hover write: %v", err)
			return
		}
	}
}

func (s *hoverSession) handle(ctx context.Context, f dto.HoverFrame) error {
	p := calendar.Point{X: f.X, Y: f.Y}
	switch f.Type {
	case dto.HoverEnter:
		date, ok := calendar.DateKey(f.Date)
		if !ok {
			return s.send(dto.HoverReply{Type: dto.HoverError, Error: service.ErrInvalidDate.Error()})
		}
		if !s.inMonth(date) {
			s.hide()
			return s.send(dto.HoverReply{Type: dto.HoverHide})
		}
		panel, err := s.svc.Preview(ctx, s.userID, s.mode, date)
		if err != nil {
			log.Printf("hover preview %s: %v", date, err)
			return s.send(dto.HoverReply{Type: dto.HoverError, Error: err.Error()})
		}
		s.hover.Enter(date, p)
		s.current = panel
		return s.show(panel)
	case dto.HoverMove:
		if !s.hover.Move(p) {
			return nil
		}
		return s.show(s.current)
	case dto.HoverLeave:
		s.hide()
		return s.send(dto.HoverReply{Type: dto.HoverHide})
	case dto.HoverPanelLeave:
		s.hover.LeavePanel()
		s.current = calendar.Panel{}
		return s.send(dto.HoverReply{Type: dto.HoverHide})
	}
	return s.send(dto.HoverReply{Type: dto.HoverError, Error: "unknown frame type " + f.Type})
}

// inMonth reports whether date belongs to the displayed month. Without a
// displayed month every date is previewable.
func (s *hoverSession) inMonth(date string) bool {
	if s.year == 0 {
		return true
	}
	y, m, ok := calendar.ParseMonth(date[:7])
	return ok && y == s.year && m == s.month
}

func (s *hoverSession) hide() {
	s.hover.Leave()
	s.current = calendar.Panel{}
}

func (s *hoverSession) show(p calendar.Panel) error {
	pos := s.hover.Position()
	return s.send(dto.HoverReply{Type: dto.HoverShow, Panel: &p, Position: &pos})
}

func (s *hoverSession) send(r dto.HoverReply) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(hoverWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(r)
}
