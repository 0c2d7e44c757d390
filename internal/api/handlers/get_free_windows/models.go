package get_free_windows

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getFreeWindows "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_free_windows"
)

// FreeWindowsResponse HTTP response model
type FreeWindowsResponse struct {
	Date      string       `json:"date"`
	VenueID   int64        `json:"venueId"`
	UTCOffset string       `json:"utcOffset"`
	Windows   []FreeWindow `json:"windows"`
}

// FreeWindow свободный промежуток, время в часовом поясе площадки
type FreeWindow struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeWindows.Response) *FreeWindowsResponse {
	windows := make([]FreeWindow, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = FreeWindow{
			Start:           w.Start.Format(time.RFC3339),
			End:             w.End.Format(time.RFC3339),
			DurationMinutes: w.DurationMinutes(),
		}
	}

	return &FreeWindowsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		VenueID:   resp.VenueID,
		UTCOffset: resp.UTCOffset,
		Windows:   windows,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(venueID, userID int64, dateStr string) (*getFreeWindows.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getFreeWindows.Request{
		UserID:  userID,
		VenueID: venueID,
		Date:    date,
	}, nil
}
