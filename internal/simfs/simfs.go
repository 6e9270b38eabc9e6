// Package simfs holds the static simulated filesystem the scenario plays
// out on. The tree is immutable at runtime and paths are unique, so lookup
// is a plain depth-first search by exact path match.
package simfs

import "strings"

type NodeType string

const (
	TypeFile   NodeType = "file"
	TypeFolder NodeType = "folder"
)

// Node is one file or folder of the simulated tree.
type Node struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      NodeType `json:"type"`
	Path      string   `json:"path"`
	Content   string   `json:"content,omitempty"`
	Encrypted bool     `json:"encrypted,omitempty"`
	Hidden    bool     `json:"hidden,omitempty"`
	Children  []*Node  `json:"children,omitempty"`
}

// MasterKey decrypts the encrypted corporate files.
const MasterKey = "C0rp0r@t3S3cr3t2025"

const employeesContent = `GEMINI CORP - EMPLOYEE LIST - CONFIDENTIAL

IT DEPARTMENT:
  System administrator: admin
    admin@geminicorp.com
    Password: Admin2025!

  IT manager: Sarah Connor
    sarah.connor@geminicorp.com

HINT: the "admin" account has access to the main server.
Server address: 192.168.1.100`

const readmeContent = `WELCOME TO THE HACKING SCENARIO

This folder contains the company's confidential files.

Your objective:
1. Find the credentials in employees.txt
2. Find the decryption key in /keys
3. Connect to the server at 192.168.1.100

Good luck!`

const masterKeyContent = `AES256 DECRYPTION KEY

Key: C0rp0r@t3S3cr3t2025

This key unlocks the sensitive files.
Keep it handy for the Caesar mini-game.`

const exploitContent = `#!/bin/bash
# Privilege escalation script.
# Exploits a sudo misconfiguration to become root.
#
# Usage: sudo /tmp/exploit.sh

echo "Exploiting..."
echo "Root privileges obtained!"
sudo su -`

// Tree is the fixed filesystem shown in the file manager and resolved by
// the terminal's cat command.
var Tree = []*Node{
	{
		ID:   "root",
		Name: "MacOS HD",
		Type: TypeFolder,
		Path: "/",
		Children: []*Node{
			{
				ID:   "applications",
				Name: "Applications",
				Type: TypeFolder,
				Path: "/Applications",
				Children: []*Node{
					{ID: "terminal", Name: "Terminal.app", Type: TypeFile, Path: "/Applications/Terminal.app"},
					{ID: "finder", Name: "Finder.app", Type: TypeFile, Path: "/Applications/Finder.app"},
				},
			},
			{
				ID:   "documents",
				Name: "Documents",
				Type: TypeFolder,
				Path: "/Documents",
				Children: []*Node{
					{
						ID:   "corporate",
						Name: "corporate",
						Type: TypeFolder,
						Path: "/Documents/corporate",
						Children: []*Node{
							{ID: "employees", Name: "employees.txt", Type: TypeFile, Path: "/Documents/corporate/employees.txt", Content: employeesContent},
							{ID: "readme", Name: "README.txt", Type: TypeFile, Path: "/Documents/corporate/README.txt", Content: readmeContent},
						},
					},
					{
						ID:   "keys",
						Name: "keys",
						Type: TypeFolder,
						Path: "/Documents/keys",
						Children: []*Node{
							{ID: "master_key", Name: "master.key", Type: TypeFile, Path: "/Documents/keys/master.key", Content: masterKeyContent, Encrypted: true},
						},
					},
				},
			},
			{
				ID:   "tmp",
				Name: "tmp",
				Type: TypeFolder,
				Path: "/tmp",
				Children: []*Node{
					{ID: "exploit", Name: "exploit.sh", Type: TypeFile, Path: "/tmp/exploit.sh", Content: exploitContent},
				},
			},
		},
	},
}

// FindByPath resolves an exact path to its node, or nil when absent.
func FindByPath(path string) *Node {
	return search(Tree, path)
}

func search(nodes []*Node, path string) *Node {
	for _, n := range nodes {
		if n.Path == path {
			return n
		}
		if found := search(n.Children, path); found != nil {
			return found
		}
	}
	return nil
}

// Resolve joins a possibly relative filename with the current directory and
// normalizes the home alias before lookup. Only "~" and leading "/" handling
// is done here; the interpreter resolves ".." itself.
func Resolve(dir, name string) *Node {
	if strings.HasPrefix(name, "/") {
		return FindByPath(name)
	}
	if dir == "~" {
		dir = ""
	}
	return FindByPath(dir + "/" + name)
}

// Decrypt returns the plaintext for an encrypted corporate file when the
// supplied key matches the master key.
func Decrypt(key string) (string, bool) {
	if key != MasterKey {
		return "", false
	}
	return `FILE DECRYPTED

Credentials for 192.168.1.100:
  user:     admin
  password: Admin2025!`, true
}
