package oshack

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ObjectiveType tags what kind of action completes an objective.
type ObjectiveType string

const (
	ObjectiveTerminal ObjectiveType = "terminal"
	ObjectiveFile     ObjectiveType = "file"
	ObjectiveMiniGame ObjectiveType = "minigame"
	ObjectiveNetwork  ObjectiveType = "network"
)

// Objective is one node in the fixed scenario chain. NextObjective is zero on
// the terminal node.
type Objective struct {
	ID             int            `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Type           ObjectiveType  `json:"type"`
	RequiredAction string         `json:"requiredAction,omitempty"`
	Hints          []string       `json:"hints"`
	Solution       map[string]any `json:"solution,omitempty"`
	NextObjective  int            `json:"nextObjective,omitempty"`
}

// FirstObjectiveID is where every fresh scenario session starts.
const FirstObjectiveID = 1

// Objectives is the scenario catalog: a singly linked chain from 1 to 20,
// loaded once and immutable at runtime.
var Objectives = []Objective{
	{
		ID:             1,
		Title:          "Discover the Terminal",
		Description:    `Open the terminal and type "help" to list the available commands.`,
		Type:           ObjectiveTerminal,
		RequiredAction: "help",
		Hints: []string{
			"Click the Terminal icon in the dock",
			`Type "help" and press Enter`,
			"Read through the list of available commands",
		},
		NextObjective: 2,
	},
	{
		ID:             2,
		Title:          "Check Your Connection",
		Description:    `Use "ifconfig" to inspect your network configuration.`,
		Type:           ObjectiveTerminal,
		RequiredAction: "ifconfig",
		Hints: []string{
			`Type "ifconfig" in the terminal`,
			"The command shows your IP address",
			"Note your machine's address for later",
		},
		NextObjective: 3,
	},
	{
		ID:             3,
		Title:          "Scan the Network",
		Description:    "Discover the other machines on the network with a scan.",
		Type:           ObjectiveNetwork,
		RequiredAction: "nmap 192.168.1.0/24",
		Hints: []string{
			"nmap scans a whole network range",
			"Type: nmap 192.168.1.0/24",
			"You will see the list of connected machines",
		},
		NextObjective: 4,
	},
	{
		ID:             4,
		Title:          "Explore the Files",
		Description:    "Open the file manager and browse the Documents folder.",
		Type:           ObjectiveFile,
		RequiredAction: "open_files",
		Hints: []string{
			"Click the Files icon in the dock",
			`Open the "Documents" folder`,
			"Look through the subfolders",
		},
		NextObjective: 5,
	},
	{
		ID:             5,
		Title:          "Find the Credentials",
		Description:    `In Documents/corporate/, open the file "employees.txt".`,
		Type:           ObjectiveFile,
		RequiredAction: "view_employees",
		Hints: []string{
			"Go to Documents → corporate",
			"Open employees.txt",
			"You will find usernames inside",
		},
		NextObjective: 6,
	},
	{
		ID:             6,
		Title:          "Find the Secret Key",
		Description:    "Look for the decryption key in Documents/keys/.",
		Type:           ObjectiveFile,
		RequiredAction: "find_key",
		Hints: []string{
			"Go to Documents → keys",
			"Open the master.key file",
			"The key is: C0rp0r@t3S3cr3t2025",
		},
		NextObjective: 7,
	},
	{
		ID:             7,
		Title:          "Decode the Intercepted Message",
		Description:    "An encrypted message was intercepted. Use the Caesar decoder.",
		Type:           ObjectiveMiniGame,
		RequiredAction: "cipher_decode",
		Hints: []string{
			"Open the hacking tools in the dock",
			`Select the "Caesar decoder"`,
			"Try shift 13 (ROT13)",
			`The message starts with "THE SECRET"`,
		},
		Solution: map[string]any{
			"cipher":  "caesar",
			"shift":   13,
			"message": "THE SECRET VAULT IS IN BUILDING B, ROOM 404",
		},
		NextObjective: 8,
	},
	{
		ID:             8,
		Title:          "Solve the Binary Puzzle",
		Description:    "Convert the binary code to text to reveal a password.",
		Type:           ObjectiveMiniGame,
		RequiredAction: "binary_puzzle",
		Hints: []string{
			`Open the "binary puzzle" tool`,
			"Every group of 8 digits is one letter",
			"01010011 = S, 01000101 = E, and so on",
			"The final code is: SECURE",
		},
		Solution:      map[string]any{"code": "SECURE"},
		NextObjective: 9,
	},
	{
		ID:             9,
		Title:          "Crack a Password",
		Description:    "Use the cracking tool to recover the admin password.",
		Type:           ObjectiveMiniGame,
		RequiredAction: "password_crack",
		Hints: []string{
			`Open the "password cracker"`,
			"Let the tool run through the dictionary",
			"The password is: Admin2025!",
			"Simple passwords are easy to guess",
		},
		Solution:      map[string]any{"password": "Admin2025!"},
		NextObjective: 10,
	},
	{
		ID:             10,
		Title:          "Scan the Server's Ports",
		Description:    "Identify the services running on the target server.",
		Type:           ObjectiveNetwork,
		RequiredAction: "nmap -p 22,80,443 192.168.1.100",
		Hints: []string{
			"Type: nmap -p 22,80,443 192.168.1.100",
			"Port 22 = SSH (remote login)",
			"Port 80 = HTTP (web)",
			"Port 443 = HTTPS (secure web)",
		},
		NextObjective: 11,
	},
	{
		ID:             11,
		Title:          "Connect over SSH",
		Description:    "Log in to the remote server with SSH.",
		Type:           ObjectiveTerminal,
		RequiredAction: "ssh admin@192.168.1.100",
		Hints: []string{
			"SSH gives you a remote shell",
			"Type: ssh admin@192.168.1.100",
			"Use the password you found: Admin2025!",
		},
		NextObjective: 12,
	},
	{
		ID:             12,
		Title:          "List the Remote Files",
		Description:    "Now connected, list the files on the server.",
		Type:           ObjectiveTerminal,
		RequiredAction: "ls -la",
		Hints: []string{
			"You are now on the remote server",
			"Type: ls -la to list every file",
			"-la also shows hidden files",
		},
		NextObjective: 13,
	},
	{
		ID:             13,
		Title:          "Read the Secret File",
		Description:    `Display the contents of "secret.txt".`,
		Type:           ObjectiveTerminal,
		RequiredAction: "cat secret.txt",
		Hints: []string{
			`"cat" prints a file's contents`,
			"Type: cat secret.txt",
			"Note the information it contains",
		},
		NextObjective: 14,
	},
	{
		ID:             14,
		Title:          "Privilege Escalation",
		Description:    "Check whether you can obtain administrator rights.",
		Type:           ObjectiveTerminal,
		RequiredAction: "sudo -l",
		Hints: []string{
			"sudo runs commands as the administrator",
			"Type: sudo -l to list your permissions",
			"Some commands are allowed without a password",
		},
		NextObjective: 15,
	},
	{
		ID:             15,
		Title:          "Run the Exploit",
		Description:    "An exploitation script is available. Execute it.",
		Type:           ObjectiveTerminal,
		RequiredAction: "sudo /tmp/exploit.sh",
		Hints: []string{
			"The script lives at /tmp/exploit.sh",
			"Type: sudo /tmp/exploit.sh",
			"It grants you root privileges",
		},
		NextObjective: 16,
	},
	{
		ID:             16,
		Title:          "Verify Your Identity",
		Description:    "Confirm that you are now root.",
		Type:           ObjectiveTerminal,
		RequiredAction: "whoami",
		Hints: []string{
			"Type: whoami",
			`If it prints "root", it worked`,
			"root is the Linux superuser",
		},
		NextObjective: 17,
	},
	{
		ID:             17,
		Title:          "Enter the Root Folder",
		Description:    "Navigate to the administrator's home directory.",
		Type:           ObjectiveTerminal,
		RequiredAction: "cd /root",
		Hints: []string{
			"The administrator's home is /root",
			"Type: cd /root",
			"Then list it with: ls",
		},
		NextObjective: 18,
	},
	{
		ID:             18,
		Title:          "Find the Final File",
		Description:    "List the files to locate the mission file.",
		Type:           ObjectiveTerminal,
		RequiredAction: "ls",
		Hints: []string{
			"Type: ls",
			"Look for a file named mission_complete.txt",
			"It holds your success code",
		},
		NextObjective: 19,
	},
	{
		ID:             19,
		Title:          "Read the Success Code",
		Description:    "Display the contents of mission_complete.txt.",
		Type:           ObjectiveTerminal,
		RequiredAction: "cat mission_complete.txt",
		Hints: []string{
			"Type: cat mission_complete.txt",
			"The file holds your success code",
			"Write the code down",
		},
		NextObjective: 20,
	},
	{
		ID:             20,
		Title:          "Mission Accomplished",
		Description:    "Congratulations, you finished the hacking scenario.",
		Type:           ObjectiveFile,
		RequiredAction: "mission_complete",
		Hints: []string{
			"You completed every step",
			"You covered the basics of ethical hacking",
			"Your success code has been generated",
		},
		Solution: map[string]any{"successCode": "HACKER-2025-MASTER-{RANDOM}"},
	},
}

var objectivesByID = func() map[int]*Objective {
	m := make(map[int]*Objective, len(Objectives))
	for i := range Objectives {
		m[Objectives[i].ID] = &Objectives[i]
	}
	return m
}()

// ObjectiveByID looks up a catalog node; ok is false for unknown ids.
func ObjectiveByID(id int) (*Objective, bool) {
	o, ok := objectivesByID[id]
	return o, ok
}

// GenerateSuccessCode builds the scenario completion code: a fixed prefix, a
// short hash of the user id, and timestamp/random entropy. Uniqueness is
// best-effort, not cryptographic.
func GenerateSuccessCode(userID string) string {
	userHash := strings.ToUpper(userID)
	if len(userHash) > 4 {
		userHash = userHash[:4]
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	b := make([]byte, 3)
	rand.Read(b)
	return "HACKER-2025-" + userHash + "-" + strings.ToUpper(ts) + "-" + strings.ToUpper(hex.EncodeToString(b))
}
