package get_free_windows

import (
	"context"

	getFreeWindows "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_free_windows"
)

type GetFreeWindowsUseCase interface {
	Execute(ctx context.Context, req *getFreeWindows.Request) (*getFreeWindows.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
