// Package terminal implements the scenario's simulated shell: a fixed
// dispatch table from (verb, canonical argument) to canned output plus
// optional progression side effects. It is deliberately not a general
// shell: unknown verbs and unexpected arguments only produce error text.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/simfs"
)

// Result is the interpreter's output contract.
type Result struct {
	Output string `json:"output"`
	Err    bool   `json:"error,omitempty"`
	// NewDir is set when the command changes the working directory.
	NewDir string `json:"newDirectory,omitempty"`
	// Clear asks the client to wipe the terminal scrollback.
	Clear bool `json:"clear,omitempty"`
}

// ProgressKeyRootAccess gates the /root directory and the root identity.
const ProgressKeyRootAccess = "hasRootAccess"

var commandHelp = []struct{ cmd, desc string }{
	{"help", "Show this command list"},
	{"ls", "List files in the current folder"},
	{"ls -la", "List all files, hidden ones included"},
	{"cd", "Change folder (e.g. cd /Documents)"},
	{"pwd", "Print the current folder"},
	{"cat", "Print a file's contents (e.g. cat file.txt)"},
	{"clear", "Clear the terminal screen"},
	{"whoami", "Print the current user"},
	{"ifconfig", "Show the network configuration"},
	{"nmap", "Scan the network (e.g. nmap 192.168.1.0/24)"},
	{"ssh", "Remote login (e.g. ssh admin@192.168.1.100)"},
	{"sudo", "Run a command as the administrator"},
	{"sudo -l", "List your sudo permissions"},
}

// Directory listings shown by ls. Static, like the rest of the scenario.
var listings = map[string][]string{
	"~":                    {"Documents/", "Applications/", "tmp/"},
	"/":                    {"Documents/", "Applications/", "tmp/"},
	"/Documents":           {"corporate/", "keys/"},
	"/Documents/corporate": {"employees.txt", "README.txt"},
	"/Documents/keys":      {"master.key"},
	"/tmp":                 {"exploit.sh"},
	"/root":                {"mission_complete.txt"},
}

// hiddenListings holds the extra entries ls -la reveals.
var hiddenListings = map[string][]string{
	"~": {".ssh/", ".bash_history", "secret.txt"},
}

// Execute runs one command line against the session. The session is mutated
// in place (objective completions, progress flags); the returned transitions
// let the caller persist the session and emit notifications.
func Execute(line, dir string, sess *oshack.Session) (Result, []oshack.Transition) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return Result{}, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	var trs []oshack.Transition
	complete := func(id int) {
		// Only the current objective may advance the chain; CompleteObjective
		// itself guards against duplicates.
		if sess == nil || sess.CurrentObjective != id {
			return
		}
		tr, err := sess.CompleteObjective(id)
		if err == nil && !tr.AlreadyDone {
			trs = append(trs, tr)
		}
	}

	var res Result
	switch verb {
	case "help":
		complete(1)
		res = runHelp()
	case "clear":
		res = Result{Clear: true}
	case "whoami":
		res = runWhoami(sess, complete)
	case "pwd":
		res = Result{Output: dir}
	case "ls":
		res = runLs(dir, args, complete)
	case "cd":
		res = runCd(dir, args, sess, complete)
	case "cat":
		res = runCat(dir, args, sess, complete)
	case "ifconfig":
		complete(2)
		res = runIfconfig()
	case "nmap":
		res = runNmap(args, complete)
	case "ssh":
		res = runSsh(args, complete)
	case "sudo":
		res = runSudo(args, sess, complete)
	default:
		res = Result{
			Output: fmt.Sprintf("Unknown command: %s\nType 'help' to list the available commands", verb),
			Err:    true,
		}
	}
	return res, trs
}

func runHelp() Result {
	var b strings.Builder
	b.WriteString("AVAILABLE COMMANDS\n\n")
	for _, c := range commandHelp {
		fmt.Fprintf(&b, "  %-15s %s\n", c.cmd, c.desc)
	}
	b.WriteString("\nTip: start with 'ifconfig' to see your IP")
	return Result{Output: b.String()}
}

func runWhoami(sess *oshack.Session, complete func(int)) Result {
	if sess != nil && sess.ProgressFlag(ProgressKeyRootAccess) {
		complete(16)
		return Result{Output: "root"}
	}
	name := "hacker"
	if sess != nil && sess.Username != "" {
		name = sess.Username
	}
	return Result{Output: name}
}

func runLs(dir string, args []string, complete func(int)) Result {
	// Any listing satisfies the remote-listing step; the -la variant only
	// changes what is shown.
	complete(12)
	if dir == "/root" {
		complete(18)
	}

	showAll := len(args) > 0 && strings.Contains(args[0], "a")

	contents, ok := listings[dir]
	if !ok {
		return Result{Output: "(empty folder)"}
	}
	if showAll {
		contents = append(append([]string{".", ".."}, hiddenListings[dir]...), contents...)
	}
	return Result{Output: strings.Join(contents, "\n")}
}

func runCd(dir string, args []string, sess *oshack.Session, complete func(int)) Result {
	if len(args) == 0 {
		return Result{NewDir: "~"}
	}

	target := args[0]
	newDir := dir
	switch {
	case target == "~" || target == "/":
		newDir = "~"
	case target == "..":
		parts := strings.Split(dir, "/")
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		if len(kept) > 1 {
			newDir = "/" + strings.Join(kept[:len(kept)-1], "/")
		} else {
			newDir = "~"
		}
	case strings.HasPrefix(target, "/"):
		newDir = target
	case dir == "~":
		newDir = "/" + target
	default:
		newDir = dir + "/" + target
	}

	if newDir == "/root" {
		if sess == nil || !sess.ProgressFlag(ProgressKeyRootAccess) {
			return Result{Output: "Permission denied: you must be root", Err: true}
		}
		complete(17)
	}

	return Result{Output: newDir, NewDir: newDir}
}

func runCat(dir string, args []string, sess *oshack.Session, complete func(int)) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: cat <file>", Err: true}
	}
	name := args[0]

	switch name {
	case "secret.txt":
		complete(13)
		return Result{Output: secretFileContent}
	case "mission_complete.txt":
		complete(19)
		complete(20)
		code := "HACKER-2025-PENDING"
		if sess != nil && sess.SuccessCode != "" {
			code = sess.SuccessCode
		}
		agent := "Hacker"
		if sess != nil && sess.Username != "" {
			agent = sess.Username
		}
		return Result{Output: missionCompleteOutput(agent, code)}
	}

	if node := simfs.Resolve(dir, name); node != nil && node.Content != "" {
		return Result{Output: node.Content}
	}
	return Result{Output: "File not found: " + name, Err: true}
}

func runIfconfig() Result {
	return Result{Output: `NETWORK CONFIGURATION

eth0:
    inet addr: 192.168.1.50
    netmask:   255.255.255.0
    gateway:   192.168.1.1

Next step: scan the network with 'nmap 192.168.1.0/24'`}
}

func runNmap(args []string, complete func(int)) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: nmap <target>\nExample: nmap 192.168.1.0/24", Err: true}
	}
	target := args[len(args)-1]

	if target == "192.168.1.0/24" {
		complete(3)
		return Result{Output: `NMAP NETWORK SCAN

Scanning 192.168.1.0/24...

  192.168.1.50     your-machine     UP
  192.168.1.100    target-server    UP
  192.168.1.1      gateway          UP

Scan complete - 3 hosts found

The target server is 192.168.1.100
Scan its ports with: nmap -p 22,80,443 192.168.1.100`}
	}

	if strings.Contains(strings.Join(args, " "), "192.168.1.100") {
		complete(10)
		return Result{Output: `PORT SCAN - 192.168.1.100

  PORT    STATE   SERVICE
  22      open    ssh
  80      open    http
  443     open    https

Port 22 (SSH) is open!

Next step: ssh admin@192.168.1.100
(use the password you found: Admin2025!)`}
	}

	return Result{Output: "Scanning " + target + "...\nNo hosts found"}
}

func runSsh(args []string, complete func(int)) Result {
	if len(args) == 0 {
		return Result{Output: "Usage: ssh user@host\nExample: ssh admin@192.168.1.100", Err: true}
	}
	target := args[0]

	if target != "admin@192.168.1.100" {
		return Result{Output: "Connection refused: " + target, Err: true}
	}

	complete(11)
	return Result{Output: fmt.Sprintf(`SSH CONNECTION - 192.168.1.100

Connecting...
Password: ********

Connection established!

Welcome to the GEMINI CORP server
Last login: %s

admin@target-server:~$

You are in. Type 'ls -la' to list the files`, time.Now().Format("Mon Jan 2 15:04:05 2006"))}
}

func runSudo(args []string, sess *oshack.Session, complete func(int)) Result {
	sub := strings.Join(args, " ")

	if sub == "-l" {
		complete(14)
		return Result{Output: `SUDO PERMISSIONS

User admin may run the following commands:
    (root) NOPASSWD: /tmp/exploit.sh

You can run: sudo /tmp/exploit.sh
That will grant you root privileges`}
	}

	if sub == "/tmp/exploit.sh" || strings.Contains(sub, "exploit") {
		complete(15)
		if sess != nil {
			sess.SetProgress(ProgressKeyRootAccess, true)
		}
		return Result{Output: `PRIVILEGE ESCALATION

Running /tmp/exploit.sh...

[##########] 100%

Exploitation successful!
You are now ROOT!

root@target-server:~#

Check with 'whoami', then enter /root with 'cd /root'`}
	}

	return Result{Output: "sudo: command not permitted", Err: true}
}

const secretFileContent = `SECRET FILE

This file holds sensitive information...

To obtain root privileges:
   1. Type: sudo -l (to list your permissions)
   2. Type: sudo /tmp/exploit.sh (to become root)`

func missionCompleteOutput(agent, code string) string {
	return fmt.Sprintf(`MISSION ACCOMPLISHED!

   Agent: %s

   YOUR SUCCESS CODE:

   %s

   Congratulations, you finished the scenario!
   Present this code to validate your run.`, agent, code)
}
