package lightloop

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseSystem schedules fn in the Update stage.
func (cmd *Commands) UseSystem(fn systemFn) *Commands {
	cmd.app.UseSystem(System(fn))
	return cmd
}

func (cmd *Commands) UseScheduledSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Exit stops Run after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exiting = true
}
