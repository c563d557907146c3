package config

import (
	"fmt"
	"strings"
)

// Host ports published by the default OTS services.
const (
	PortPortainer = 25003
	PortSQLServer = 1433
	PortCadvisor  = 25005
	PortDozzle    = 25006
)

// commandLine joins launch arguments into the single string stored in the
// catalog.
func commandLine(args ...string) string {
	return strings.Join(args, " ")
}

// DefaultCatalog returns the catalog written when none exists yet.
func DefaultCatalog() *Catalog {
	return &Catalog{
		OTS: []Service{
			{
				Name: "portainer",
				Port: PortPortainer,
				CommandLine: commandLine(
					"docker", "run", "-d",
					"--name", "ots_portainer",
					"-p", "9000:9000",
					"-p", fmt.Sprintf("%d:9443", PortPortainer),
					"-v", "/var/run/docker.sock:/var/run/docker.sock",
					"-v", "portainer_data:/data",
					"--restart", "unless-stopped",
					"portainer/portainer-ce:latest",
				),
			},
			{
				Name: "sqlserver",
				Port: PortSQLServer,
				CommandLine: commandLine(
					"docker", "run", "-d",
					"--name", "ots_sqlserver",
					"-v", "sqlserver_data:/var/opt/mssql",
					"-p", fmt.Sprintf("%d:1433", PortSQLServer),
					"-e", "ACCEPT_EULA=Y",
					"-e", "SA_PASSWORD=Sh@dokN0tD€ad!",
					"--restart", "unless-stopped",
					"mcr.microsoft.com/mssql/server:2022-latest",
				),
			},
			{
				Name: "dozzle",
				Port: PortDozzle,
				CommandLine: commandLine(
					"docker", "run", "-d",
					"--name", "ots_dozzle",
					"-v", "/var/run/docker.sock:/var/run/docker.sock",
					"-p", fmt.Sprintf("%d:8080", PortDozzle),
					"--restart", "unless-stopped",
					"amir20/dozzle:latest",
				),
			},
			{
				Name: "cadvisor",
				Port: PortCadvisor,
				CommandLine: commandLine(
					"docker", "run", "-d",
					"--name", "ots_cadvisor",
					"-v", "/:/rootfs:ro",
					"-v", "/var/run:/var/run:rw",
					"-v", "/sys:/sys:ro",
					"-v", "/var/lib/docker/:/var/lib/docker:ro",
					"-p", fmt.Sprintf("%d:8080", PortCadvisor),
					"--restart", "unless-stopped",
					"gcr.io/cadvisor/cadvisor:latest",
				),
			},
		},
	}
}
