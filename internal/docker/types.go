package docker

// Info is what the daemon reports about itself
type Info struct {
	Host          string
	APIVersion    string // negotiated API version
	ServerVersion string
	MinAPIVersion string
	OS            string // linux, windows
	Arch          string
	KernelVersion string
	Experimental  bool
}

// Platform returns "os/arch".
func (i *Info) Platform() string {
	return i.OS + "/" + i.Arch
}
