// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prefs_cmd.go - Preferences command implementation for typebuddy.
//
// Command: prefs [subcommand]
// Short:   View and change keyboard and voice preferences
// Aliases: preferences
//
// Subcommands:
//   show (default)            Display current preferences
//   set <key> <value>         Change one preference
//   keys                      List settable keys
//   reset-layout <layout>     Restore a keyboard's default keys and sizes
//   lock                      Set or change the caregiver PIN
//   unlock                    Remove the caregiver PIN
//   path                      Show the preferences file location
//
// Examples:
//   typebuddy prefs
//   typebuddy prefs set keyboardLayout qwerty
//   typebuddy prefs set voice.rate 1.5 --pin 2468
//   typebuddy prefs reset-layout abc
//   typebuddy prefs lock --new-pin 2468
//   typebuddy prefs lock --pin 2468 --new-pin 1357
//   typebuddy prefs unlock --pin 1357
//
// Flags:
//   --pin PIN           Current caregiver PIN (prompted when needed)
//   --new-pin PIN       New caregiver PIN for lock (prompted when absent)
//   --json              Output in JSON format
//
// SECURITY: PINs are never echoed when prompted and never printed.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/typebuddy/internal/prefs"
)

// HandlePrefs handles the "prefs" command.
func HandlePrefs(args Args) error {
	p := NewArgParser(args.Raw)
	sub := strings.ToLower(p.Subcommand())

	if sub == "keys" {
		return handlePrefsKeys(args)
	}

	store, err := openPrefs(loadConfig())
	if err != nil {
		return NewCommandError("prefs", "load", "could not read preferences", err)
	}

	switch sub {
	case "", "show":
		return handlePrefsShow(store, args)
	case "set":
		return handlePrefsSet(store, p, args)
	case "reset-layout", "reset":
		return handlePrefsResetLayout(store, p, args)
	case "lock":
		return handlePrefsLock(store, p, args)
	case "unlock":
		return handlePrefsUnlock(store, p, args)
	case "path":
		if args.JSON {
			return printJSON("prefs path", map[string]string{"path": store.Path()})
		}
		fmt.Fprintln(stdout, store.Path())
		return nil
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown prefs subcommand",
			"typebuddy prefs [show|set|keys|reset-layout|lock|unlock|path]")
	}
}

// publicPrefs returns the document without the PIN hash.
func publicPrefs(store *prefs.Store) PrefsData {
	doc := store.Get()
	doc.CaregiverLock = nil
	return PrefsData{Path: store.Path(), Locked: store.Locked(), Preferences: doc}
}

func handlePrefsShow(store *prefs.Store, args Args) error {
	data := publicPrefs(store)
	if args.JSON {
		return printJSON("prefs", data)
	}

	doc := data.Preferences
	voiceID := "(system default)"
	if doc.VoiceSettings.VoiceID != nil {
		voiceID = *doc.VoiceSettings.VoiceID
	}
	lock := "off"
	if data.Locked {
		lock = "on"
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Preferences"))
	fmt.Fprintln(stdout, RenderSeparator())
	fmt.Fprintln(stdout, SectionStyle.Render("Keyboard"))
	fmt.Fprintln(stdout, RenderField("keyboardLayout", string(doc.KeyboardLayout)))
	fmt.Fprintln(stdout, RenderField("keyboardSize", string(doc.KeyboardSize)))
	fmt.Fprintln(stdout, RenderField("typingAreaSize", string(doc.TypingAreaSize)))
	fmt.Fprintln(stdout, RenderField("keySpacing", string(doc.KeySpacing)))
	fmt.Fprintln(stdout, SectionStyle.Render("Profile"))
	fmt.Fprintln(stdout, RenderField("displayName", doc.DisplayName))
	fmt.Fprintln(stdout, RenderField("avatarId", doc.AvatarID))
	fmt.Fprintln(stdout, SectionStyle.Render("Colors"))
	fmt.Fprintln(stdout, RenderField("buttonColorId", doc.ButtonColorID))
	fmt.Fprintln(stdout, RenderField("letterboardBgColorId", doc.LetterboardBgColorID))
	fmt.Fprintln(stdout, RenderField("letterboardTextColorId", doc.LetterboardTextColorID))
	fmt.Fprintln(stdout, RenderField("qwertyTextColor", doc.QwertyTextColor))
	fmt.Fprintln(stdout, SectionStyle.Render("Voice"))
	fmt.Fprintln(stdout, RenderField("voice.rate", fmt.Sprintf("%.2g", doc.VoiceSettings.Rate)))
	fmt.Fprintln(stdout, RenderField("voice.pitch", fmt.Sprintf("%.2g", doc.VoiceSettings.Pitch)))
	fmt.Fprintln(stdout, RenderField("voice.voiceId", voiceID))
	fmt.Fprintln(stdout, RenderField("voice.speakLettersOnType", fmt.Sprint(doc.VoiceSettings.SpeakLettersOnType)))
	fmt.Fprintln(stdout, RenderField("voice.speakSentencesOnComplete", fmt.Sprint(doc.VoiceSettings.SpeakSentencesOnComplete)))
	fmt.Fprintln(stdout, RenderField("voice.sayAndAfterLetters", fmt.Sprint(doc.VoiceSettings.SayAndAfterLetters)))
	fmt.Fprintln(stdout, SectionStyle.Render("Metronome"))
	fmt.Fprintln(stdout, RenderField("metronomeVolume", fmt.Sprintf("%.2g", doc.MetronomeVolume)))
	fmt.Fprintln(stdout, RenderField("metronomeBpm", fmt.Sprint(doc.MetronomeBpm)))
	fmt.Fprintln(stdout, RenderSeparator())
	fmt.Fprintln(stdout, RenderField("Caregiver lock", lock))
	return nil
}

func handlePrefsKeys(args Args) error {
	if args.JSON {
		return printJSON("prefs keys", map[string][]string{"keys": prefs.Fields})
	}
	for _, f := range prefs.Fields {
		fmt.Fprintln(stdout, f)
	}
	return nil
}

func handlePrefsSet(store *prefs.Store, p *ArgParser, args Args) error {
	key := p.Positional(1)
	if key == "" || p.PositionalCount() < 3 {
		return ErrMissingArgument("key and value", "typebuddy prefs set keyboardLayout qwerty")
	}
	value := JoinPositionalArgs(p, 2)

	pin, err := pinFrom(p, "pin", "Caregiver PIN: ", store.Locked(), args.JSON)
	if err != nil {
		return err
	}
	if err := store.UpdateWithPin(pin, func(doc *prefs.Preferences) error {
		return doc.SetField(key, value)
	}); err != nil {
		return NewCommandError("prefs", "set", key, err)
	}

	if args.JSON {
		return printJSON("prefs set", publicPrefs(store))
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s %s = %s\n", SuccessStyle.Render("✓"), key, value)
	}
	return nil
}

func handlePrefsResetLayout(store *prefs.Store, p *ArgParser, args Args) error {
	name := strings.ToLower(p.Positional(1))
	if name == "" {
		return ErrMissingArgument("layout", "typebuddy prefs reset-layout abc")
	}

	pin, err := pinFrom(p, "pin", "Caregiver PIN: ", store.Locked(), args.JSON)
	if err != nil {
		return err
	}
	if err := store.Authorize(pin); err != nil {
		return NewCommandError("prefs", "reset-layout", name, err)
	}
	if err := store.ResetCustomLayout(prefs.KeyboardLayout(name)); err != nil {
		return NewCommandError("prefs", "reset-layout", name, err)
	}

	if args.JSON {
		return printJSON("prefs reset-layout", publicPrefs(store))
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s %s keyboard restored to its default keys\n", SuccessStyle.Render("✓"), name)
	}
	return nil
}

func handlePrefsLock(store *prefs.Store, p *ArgParser, args Args) error {
	current, err := pinFrom(p, "pin", "Current PIN: ", store.Locked(), args.JSON)
	if err != nil {
		return err
	}
	newPin, err := pinFrom(p, "new-pin", "New PIN (4-8 digits): ", true, args.JSON)
	if err != nil {
		return err
	}
	if newPin == "" {
		return ErrMissingArgument("new-pin", "typebuddy prefs lock --new-pin 2468")
	}
	if !p.HasFlag("new-pin") && !args.JSON {
		confirm, err := promptSecret("Repeat new PIN: ")
		if err != nil {
			return err
		}
		if confirm != newPin {
			return NewValidationError("new-pin", "", "PINs do not match")
		}
	}

	changing := store.Locked()
	if err := store.SetLock(current, newPin); err != nil {
		return NewCommandError("prefs", "lock", "caregiver PIN not set", err)
	}

	if args.JSON {
		return printJSON("prefs lock", map[string]bool{"locked": true})
	}
	if !args.Quiet {
		if changing {
			fmt.Fprintf(stdout, "%s Caregiver PIN changed\n", SuccessStyle.Render("✓"))
		} else {
			fmt.Fprintf(stdout, "%s Caregiver lock on: preference changes now need the PIN\n", SuccessStyle.Render("✓"))
		}
	}
	return nil
}

func handlePrefsUnlock(store *prefs.Store, p *ArgParser, args Args) error {
	pin, err := pinFrom(p, "pin", "Caregiver PIN: ", store.Locked(), args.JSON)
	if err != nil {
		return err
	}
	if err := store.ClearLock(pin); err != nil {
		if errors.Is(err, prefs.ErrNoLock) {
			if args.JSON {
				return printJSON("prefs unlock", map[string]bool{"locked": false})
			}
			fmt.Fprintln(stdout, DimStyle.Render("No caregiver PIN is set."))
			return nil
		}
		return NewCommandError("prefs", "unlock", "caregiver PIN not removed", err)
	}

	if args.JSON {
		return printJSON("prefs unlock", map[string]bool{"locked": false})
	}
	if !args.Quiet {
		fmt.Fprintf(stdout, "%s Caregiver lock removed\n", SuccessStyle.Render("✓"))
	}
	return nil
}
