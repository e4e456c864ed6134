package location

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// readTimeout bounds a single serial read so a silent receiver cannot hang
// the scan loop forever.
const readTimeout = 5 * time.Second

// GPSSensorProvider retrieves fixes from a GPS receiver attached to a serial
// port. The port is opened per read, so a receiver that is unplugged between
// samples only fails the affected read.
type GPSSensorProvider struct {
	port     string
	baudRate int
}

// NewGPSSensorProvider creates a new GPSSensorProvider for the given serial
// port and baud rate.
func NewGPSSensorProvider(port string, baudRate int) *GPSSensorProvider {
	return &GPSSensorProvider{
		port:     port,
		baudRate: baudRate,
	}
}

// GetLocation reads NMEA sentences from the receiver until it sees a GGA fix.
func (g *GPSSensorProvider) GetLocation(ctx context.Context) (Location, error) {
	s, err := serial.OpenPort(&serial.Config{
		Name:        g.port,
		Baud:        g.baudRate,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return Location{}, err
	}
	defer s.Close()

	scanner := bufio.NewScanner(s)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Location{}, err
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, "$GPGGA") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			return Location{}, err
		}
		gga, ok := sentence.(nmea.GGA)
		if !ok {
			continue
		}

		return Location{
			Latitude:  gga.Latitude,
			Longitude: gga.Longitude,
			Accuracy:  float64(gga.HDOP), // HDOP as a proxy for accuracy
			Time:      time.Now(),
		}, nil
	}

	if err := scanner.Err(); err != nil {
		return Location{}, err
	}
	return Location{}, errors.New("no GGA sentence received from GPS device")
}

// Close is a no-op since the serial port is opened per read.
func (g *GPSSensorProvider) Close() error {
	return nil
}
