package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/cryptox"
	"github.com/dmitrijs2005/fileshare/internal/filex"
)

var errNotBase64 = errors.New("stored payload is not base64")

func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListFiles(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No files")
		return nil
	}
	for _, f := range list {
		marker := ""
		if cryptox.IsSealed(f.EncryptedData) {
			marker = " [sealed]"
		}
		owner := f.UserID
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(a.out, "%s  %-24s %-20s %s%s\n", f.CreatedAt.Local().Format(time.DateTime), f.Name, owner, f.Description, marker)
	}
	return nil
}

// argOrPrompt returns the joined args, or asks for a value when there are none.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Upload sends a local file. With a passphrase the content is sealed before
// it leaves the machine, otherwise it is only base64 encoded.
func (a *App) Upload(ctx context.Context, args []string) error {
	path, err := a.argOrPrompt(args, "Path to file")
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "Description (empty for automatic)", a.out)
	if err != nil {
		return err
	}

	passphrase, err := getSecret(a.out, "Passphrase (empty to upload unsealed): ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	var payload string
	if len(passphrase) > 0 {
		payload, err = cryptox.SealPayload(data, string(passphrase))
		if err != nil {
			return err
		}
	} else {
		payload = base64.StdEncoding.EncodeToString(data)
	}

	name := filepath.Base(path)
	err = a.api.Upload(ctx, models.Upload{
		Name:          name,
		Description:   description,
		EncryptedData: payload,
		UserID:        a.email,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s\n", name)
	return nil
}

// Download fetches a file by name into the configured download directory,
// opening sealed payloads with a passphrase.
func (a *App) Download(ctx context.Context, args []string) error {
	name, err := a.argOrPrompt(args, "File name")
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("file name is required")
	}

	f, err := a.api.Download(ctx, name)
	if err != nil {
		return err
	}

	var data []byte
	if cryptox.IsSealed(f.EncryptedData) {
		passphrase, err := getSecret(a.out, "Passphrase: ")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(passphrase)
		data, err = cryptox.OpenPayload(f.EncryptedData, string(passphrase))
		if err != nil {
			return err
		}
	} else {
		data, err = base64.StdEncoding.DecodeString(f.EncryptedData)
		if err != nil {
			return errNotBase64
		}
	}

	dir, err := filex.EnsureSubdDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	target, err := filex.SafeJoin(dir, f.Name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%s)\n", target, f.Description)
	return nil
}
