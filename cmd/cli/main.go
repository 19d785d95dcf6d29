package main

import (
	"github.com/guardsys/guardsys/cmd/cli/assets"
	"github.com/guardsys/guardsys/cmd/cli/auth"
	"github.com/guardsys/guardsys/cmd/cli/maint"
	"github.com/guardsys/guardsys/cmd/cli/orgs"
	"github.com/guardsys/guardsys/cmd/cli/root"
	"github.com/guardsys/guardsys/cmd/cli/users"
)

func main() {
	r := root.GetRoot()
	auth.InitAuth(r)
	assets.InitAssets(r)
	orgs.InitOrgs(r)
	maint.InitMaintenance(r)
	users.InitUsers(r)

	root.Execute()
}
