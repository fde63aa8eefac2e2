package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"holoalarm/internal/bootstrap"
	alarmdto "holoalarm/internal/modules/alarm/dto"
	profileinadapter "holoalarm/internal/modules/profile/adapter/in"
	profiledto "holoalarm/internal/modules/profile/dto"
	"holoalarm/internal/platform/config"
	apperrors "holoalarm/internal/platform/errors"
)

var (
	accent = color.New(color.FgCyan, color.Bold)
	dim    = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = warn.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	home       string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "holoalarm",
		Short:         "Holographic alarm clock with a synthetic wake-up voice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.home, "home", defaultHome(), "directory holding .holoalarm/")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <home>/.holoalarm/config.yml)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newWatchCmd(flags))
	root.AddCommand(newAlarmCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newSpeakCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func defaultHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func loadApp(ctx context.Context, flags *globalFlags, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := config.New(flags.home, flags.configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, opts)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the holographic terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{LogToFile: true})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newWatchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Ring alarms headless; enter dismisses, q quits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunWatch(ctx, app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newAlarmCmd(flags *globalFlags) *cobra.Command {
	alarm := &cobra.Command{Use: "alarm", Short: "Manage alarms"}

	var repeat []string
	addCmd := &cobra.Command{
		Use:   "add <HH:MM> [label...]",
		Short: "Schedule a new enabled alarm",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlarmCLI.Add(cmd.Context(), args[0], strings.Join(args[1:], " "), repeat)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "alarm %s set for %s (%s)", out.ID, accent.Sprint(out.Time), out.Label)
			if !out.NextRing.IsZero() {
				_, _ = fmt.Fprintf(w, ", rings %s", out.NextRing.Format("Mon 15:04"))
			}
			_, _ = fmt.Fprintln(w)
			return nil
		},
	}
	addCmd.Flags().StringSliceVar(&repeat, "repeat", nil, "weekdays to remember, e.g. Mon,Wed,Fri")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List alarms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			alarms, err := app.AlarmCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			printAlarms(cmd.OutOrStdout(), alarms, time.Now())
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlarmCLI.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Removed {
				_, _ = dim.Fprintf(cmd.OutOrStdout(), "no alarm %s\n", out.ID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", out.ID)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlarmCLI.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Found {
				_, _ = dim.Fprintf(cmd.OutOrStdout(), "no alarm %s\n", args[0])
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", out.Alarm.Time, out.Alarm.Label, enabledLabel(out.Alarm.Enabled))
			return nil
		},
	}

	var outPath string
	var includeDisabled bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export alarms as an iCalendar file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlarmCLI.Export(cmd.Context(), includeDisabled)
			if err != nil {
				return err
			}
			if out.Count == 0 {
				_, _ = dim.Fprintln(cmd.ErrOrStderr(), "nothing to export")
				return nil
			}
			if outPath == "" || outPath == "-" {
				_, err := cmd.OutOrStdout().Write(out.Data)
				return err
			}
			if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d alarms to %s\n", out.Count, outPath)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&includeDisabled, "all", false, "include disabled alarms")

	alarm.AddCommand(addCmd, listCmd, deleteCmd, toggleCmd, exportCmd)
	return alarm
}

func newProfileCmd(flags *globalFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Manage the user profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Show(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var name, voice, photo string
	var clearPhoto bool
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update name, voice or photo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields := profileinadapter.SetFields{ClearPhoto: clearPhoto}
			if cmd.Flags().Changed("name") {
				fields.Name = &name
			}
			if cmd.Flags().Changed("voice") {
				fields.Voice = &voice
			}
			if cmd.Flags().Changed("photo") {
				fields.PhotoPath = &photo
			}
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Set(cmd.Context(), fields)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), out)
			return nil
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "display name")
	setCmd.Flags().StringVar(&voice, "voice", "", "voice: Kore|Puck|Charon|Zephyr|Fenrir")
	setCmd.Flags().StringVar(&photo, "photo", "", "path to a portrait image")
	setCmd.Flags().BoolVar(&clearPhoto, "clear-photo", false, "remove the stored photo")

	profile.AddCommand(setCmd)

	profile.AddCommand(&cobra.Command{
		Use:   "stylize",
		Short: "Turn the stored photo into a holographic avatar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Stylize(cmd.Context())
			if err != nil {
				return err
			}
			if !out.Stylized {
				_, _ = warn.Fprintf(cmd.OutOrStdout(), "avatar unchanged: %s\n", out.Reason)
				return nil
			}
			_, _ = good.Fprintln(cmd.OutOrStdout(), "hologram projected")
			return nil
		},
	})

	profile.AddCommand(&cobra.Command{
		Use:   "voices",
		Short: "List the prebuilt voices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			for _, v := range app.ProfileCLI.Voices() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", accent.Sprint(v.Name), dim.Sprint(v.Description))
			}
			return nil
		},
	})
	return profile
}

func newSpeakCmd(flags *globalFlags) *cobra.Command {
	var voice string
	speak := &cobra.Command{
		Use:   "speak [text...]",
		Short: "Preview a voice",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()
			if voice == "" {
				p, err := app.ProfileCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				voice = p.VoiceName
			}
			out, err := app.WakeCLI.Speak(cmd.Context(), strings.Join(args, " "), voice)
			if errors.Is(err, apperrors.ErrServiceUnavailable) {
				return fmt.Errorf("%w (set GEMINI_API_KEY)", err)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %.1fs %s\n", accent.Sprint(voice), out.Seconds, dim.Sprint(out.AudioPath))
			return nil
		},
	}
	speak.Flags().StringVar(&voice, "voice", "", "voice (default the profile voice)")
	return speak
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(flags.home, flags.configPath)
			if err != nil {
				return err
			}
			raw, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), raw)
			return nil
		},
	})
	return cfgCmd
}

func printAlarms(w io.Writer, alarms []alarmdto.AlarmOutput, now time.Time) {
	if len(alarms) == 0 {
		_, _ = dim.Fprintln(w, "no alarms")
		return
	}
	for _, a := range alarms {
		next := ""
		if a.Enabled && !a.NextRing.IsZero() {
			next = "in " + a.NextRing.Sub(now).Round(time.Minute).String()
		}
		repeat := ""
		if len(a.Repeat) > 0 {
			repeat = strings.Join(a.Repeat, ",")
		}
		_, _ = fmt.Fprintf(w, "%s  %s  %-24s %-12s %s  %s\n",
			accent.Sprint(a.Time), enabledLabel(a.Enabled), a.Label, repeat, dim.Sprint(next), dim.Sprint(a.ID))
	}
}

func printProfile(w io.Writer, p profiledto.ProfileOutput) {
	photo := dim.Sprint("none")
	if p.HasPhoto() {
		photo = good.Sprintf("%d base64 chars", len(*p.PhotoBase64))
	}
	_, _ = fmt.Fprintf(w, "name:  %s\nvoice: %s\nphoto: %s\n", accent.Sprint(p.Name), p.VoiceName, photo)
}

func enabledLabel(enabled bool) string {
	if enabled {
		return good.Sprint("on ")
	}
	return dim.Sprint("off")
}
