package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"sales-assistant-be/internal/config"
	"sales-assistant-be/pkg/gateway"
	"sales-assistant-be/pkg/session"
	"sales-assistant-be/pkg/speech"
)

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	errorColor     = color.New(color.FgRed)
	infoColor      = color.New(color.FgYellow)

	// One scanner for all prompts; a scanner per prompt would swallow
	// buffered read-ahead input.
	stdin = bufio.NewScanner(os.Stdin)
)

func main() {
	cfg := config.Load()

	client := gateway.NewClient(cfg.Client.ServerURL, time.Duration(cfg.Client.RequestTimeout)*time.Second)

	tokens, err := session.NewFileTokenStore()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Cannot set up token storage: %v\n", err)
		os.Exit(1)
	}

	recognizer, synthesizer := buildSpeech(cfg.Speech)

	controller := session.NewController(client, tokens, recognizer, synthesizer, cfg.Speech.Enabled)

	infoColor.Println("Sales Assistant")
	infoColor.Println(`Type /help for commands, or just chat once you are logged in.`)
	fmt.Println()

	if controller.Restore(context.Background()) {
		infoColor.Printf("Welcome back, %s.\n", controller.Username())
		printHistory(controller)
	} else {
		infoColor.Println("Use /login or /register to get started.")
	}

	repl(controller)
}

func buildSpeech(cfg config.SpeechConfig) (speech.Recognizer, speech.Synthesizer) {
	if !cfg.Enabled {
		return nil, speech.NoopSynthesizer{}
	}

	var recognizer speech.Recognizer
	if r, err := speech.NewExecRecognizer(cfg.ListenerCmd); err == nil {
		recognizer = r
	}

	var synthesizer speech.Synthesizer = speech.NoopSynthesizer{}
	if s, err := speech.NewExecSynthesizer(cfg.SpeakerCmd); err == nil {
		synthesizer = s
	}
	return recognizer, synthesizer
}

func repl(controller *session.Controller) {
	for {
		promptColor.Print(promptLabel(controller))
		if !stdin.Scan() {
			fmt.Println()
			controller.Logout(context.Background())
			return
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runSlashCommand(controller, line); quit {
				return
			}
			continue
		}

		sendAndPrint(controller, line)
	}
}

func promptLabel(controller *session.Controller) string {
	if controller.State() == session.StateLoggedIn {
		return controller.Username() + "> "
	}
	return "> "
}

func runSlashCommand(controller *session.Controller, line string) (quit bool) {
	ctx := context.Background()

	switch strings.ToLower(line) {
	case "/help":
		printHelp()

	case "/login":
		username := readLine("Username: ")
		password := readPassword("Password: ")
		welcome, err := controller.Login(ctx, username, password)
		if err != nil {
			printError(err)
			return false
		}
		assistantColor.Println(welcome)

	case "/register":
		username := readLine("Username: ")
		email := readLine("Email: ")
		password := readPassword("Password: ")
		welcome, err := controller.Register(ctx, username, email, password)
		if err != nil {
			printError(err)
			return false
		}
		assistantColor.Println(welcome)

	case "/logout":
		controller.Logout(ctx)
		infoColor.Println("Logged out.")

	case "/history":
		printHistory(controller)

	case "/voice":
		captureVoice(controller)

	case "/quit", "/exit":
		controller.Logout(ctx)
		return true

	default:
		errorColor.Printf("Unknown command %q. Type /help.\n", line)
	}
	return false
}

func captureVoice(controller *session.Controller) {
	infoColor.Println("Listening... speak one command.")
	text, err := controller.CaptureVoice(context.Background())
	if err != nil {
		if errors.Is(err, speech.ErrUnsupported) {
			errorColor.Println("Voice input is not available. Set SPEECH_ENABLED and SPEECH_LISTENER_CMD.")
		} else {
			printError(err)
		}
		return
	}
	if text == "" {
		return
	}
	fmt.Printf("Heard: %s\n", text)
	sendAndPrint(controller, text)
}

func sendAndPrint(controller *session.Controller, text string) {
	reply, err := controller.SendUtterance(context.Background(), text)
	if err != nil {
		printError(err)
		return
	}
	if reply != "" {
		assistantColor.Println(reply)
	}
}

func printHistory(controller *session.Controller) {
	for _, msg := range controller.Messages() {
		if msg.Role == "user" {
			promptColor.Printf("you: %s\n", msg.Content)
		} else {
			assistantColor.Println(msg.Content)
		}
	}
}

func printError(err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		errorColor.Println("Still waiting on the previous message.")
	case errors.Is(err, session.ErrNotLoggedIn):
		errorColor.Println("You are not logged in. Use /login or /register.")
	case errors.Is(err, session.ErrLoggedIn):
		errorColor.Println("Already logged in. Use /logout first.")
	default:
		errorColor.Printf("%v\n", err)
	}
}

func printHelp() {
	fmt.Println(`Commands:
  /login     sign in to an existing account
  /register  create a new account
  /logout    end the session (history is saved server-side)
  /history   reprint the conversation so far
  /voice     speak a command instead of typing it
  /quit      save and exit

Anything else is sent to the assistant. Try:
  list products
  show iPhone
  select category:Electronics
  add name:Pen price:1.5 category:Office stock:100
  reduce stock name:Pen amount:5`)
}

func readLine(label string) string {
	promptColor.Print(label)
	if !stdin.Scan() {
		return ""
	}
	return strings.TrimSpace(stdin.Text())
}

func readPassword(label string) string {
	promptColor.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	return readLine("")
}
