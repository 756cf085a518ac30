// Package prompt implements the interactive command-line prompts used by
// cmd/lightwalletd when creating or restoring a wallet. Only the
// mnemonic-seed prompts are in scope here: passphrase and legacy-keystore
// encryption prompts are
// dropped since wallet-file encryption is an out-of-scope external
// collaborator concern (spec section 1), and this module persists its
// wallet file in plaintext (see walletdb).
package prompt

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/cryptonote"
)

// promptList prompts the user with the given prefix, expecting a response
// contained in validResponses. The function repeats the prompt until the
// user enters a valid response.
func promptList(reader *bufio.Reader, prefix string, validResponses []string, defaultEntry string) (string, error) {
	if defaultEntry != "" {
		prefix = fmt.Sprintf("%s (default: %s)", prefix, defaultEntry)
	}
	prefix = fmt.Sprintf("%s: ", prefix)

	for {
		fmt.Print(prefix)
		reply, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		reply = strings.TrimSpace(strings.ToLower(reply))
		if reply == "" {
			reply = defaultEntry
		}

		for _, validResponse := range validResponses {
			if reply == validResponse {
				return reply, nil
			}
		}
	}
}

// promptListBool prompts the user for a boolean (yes/no) with the given
// prefix. The function repeats the prompt until they enter a valid
// response.
func promptListBool(reader *bufio.Reader, prefix string, defaultEntry string) (bool, error) {
	valid := []string{"n", "no", "y", "yes"}
	response, err := promptList(reader, prefix, valid, defaultEntry)
	if err != nil {
		return false, err
	}
	return response == "yes" || response == "y", nil
}

// Seed ascertains the private spend key a new wallet should be created
// from. When the user has an existing mnemonic seed, they are prompted to
// enter it; ops.MnemonicToPrivateKey both decodes and validates it.
// Otherwise a fresh key pair is generated and its mnemonic is displayed
// for the user to record, then confirmed by asking them to re-enter it.
// All prompts repeat until the user enters a valid response.
func Seed(reader *bufio.Reader, ops cryptonote.Ops) (blockdata.Hash32, []string, error) {
	useExisting, err := promptListBool(reader, "Do you have an "+
		"existing wallet seed you want to use?", "no")
	if err != nil {
		return blockdata.Hash32{}, nil, err
	}

	if useExisting {
		return existingSeed(reader, ops)
	}
	return newSeed(reader, ops)
}

func existingSeed(reader *bufio.Reader, ops cryptonote.Ops) (blockdata.Hash32, []string, error) {
	fmt.Println("Enter the mnemonic seed for your existing wallet.")
	for {
		words, err := readWords(reader)
		if err != nil {
			return blockdata.Hash32{}, nil, err
		}

		private, err := ops.MnemonicToPrivateKey(words)
		if err != nil {
			fmt.Printf("Invalid seed: %v. Please try again.\n", err)
			continue
		}
		return private, words, nil
	}
}

func newSeed(reader *bufio.Reader, ops cryptonote.Ops) (blockdata.Hash32, []string, error) {
	_, private, err := ops.GenerateKeyPair()
	if err != nil {
		return blockdata.Hash32{}, nil, err
	}

	words, err := ops.PrivateKeyToMnemonic(private)
	if err != nil {
		return blockdata.Hash32{}, nil, err
	}

	fmt.Println("Your wallet generation seed is:")
	fmt.Println(strings.Join(words, " "))
	fmt.Println("IMPORTANT: Keep this seed in a safe place. Anyone who " +
		"has access to it can spend your funds, and it is the only " +
		"way to restore your wallet if this file is lost.")

	for {
		confirmed, err := promptListBool(reader, "Once you have "+
			"written down the seed, type \"yes\" to continue", "no")
		if err != nil {
			return blockdata.Hash32{}, nil, err
		}
		if confirmed {
			break
		}
	}

	fmt.Println("Please re-enter your seed to confirm you recorded it correctly.")
	for {
		confirmWords, err := readWords(reader)
		if err != nil {
			return blockdata.Hash32{}, nil, err
		}
		if wordsEqual(words, confirmWords) {
			return private, words, nil
		}
		fmt.Println("The seed you entered does not match. Please try again.")
	}
}

// readWords reads a whitespace-separated line of mnemonic words.
func readWords(reader *bufio.Reader) ([]string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sortedA := append([]string(nil), a...)
	sortedB := append([]string(nil), b...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)
	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}
	return true
}
