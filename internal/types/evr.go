package types

import (
	"strconv"
	"strings"

	rpmversion "github.com/cavaliercoder/go-rpm/version"
)

// EVR is an RPM epoch/version/release triple.
type EVR struct {
	Epoch   int
	Version string
	Release string
}

func (e EVR) String() string {
	var builder strings.Builder
	if e.Epoch != 0 {
		builder.WriteString(strconv.Itoa(e.Epoch))
		builder.WriteString(":")
	}
	builder.WriteString(e.Version)
	if e.Release != "" {
		builder.WriteString("-")
		builder.WriteString(e.Release)
	}
	return builder.String()
}

// Compare orders e against other the way rpm does: epoch, then version,
// then release, each segment compared with rpmvercmp.
func (e EVR) Compare(other EVR) int {
	return rpmversion.Compare(evrVersion{evr: e}, evrVersion{evr: other})
}

// evrVersion adapts an EVR to the go-rpm version interface.
type evrVersion struct {
	evr EVR
}

func (v evrVersion) Name() string    { return "" }
func (v evrVersion) Epoch() int      { return v.evr.Epoch }
func (v evrVersion) Version() string { return v.evr.Version }
func (v evrVersion) Release() string { return v.evr.Release }

var _ rpmversion.Interface = evrVersion{}
