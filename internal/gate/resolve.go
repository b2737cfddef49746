// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package gate resolves download requests and runs the countdown that precedes
// handing a download link off to the client.
package gate

import (
	"fmt"

	"github.com/lazycatapps/downloadhub/internal/models"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
)

// Resolve finds the first download version of the software that contains the part.
// It returns ErrSoftwareNotFound or ErrPartNotFound (both 404) when nothing matches.
func Resolve(items []models.SoftwareItem, softwareID string, partNumber int) (*models.Resolution, error) {
	var software *models.SoftwareItem
	for i := range items {
		if items[i].ID == softwareID {
			software = &items[i]
			break
		}
	}
	if software == nil {
		return nil, apperrors.Wrap(fmt.Errorf("software %q", softwareID),
			apperrors.ErrSoftwareNotFound.Code, apperrors.ErrSoftwareNotFound.Message, apperrors.ErrSoftwareNotFound.StatusCode)
	}

	for i := range software.DownloadVersions {
		version := &software.DownloadVersions[i]
		part := version.FindPart(partNumber)
		if part == nil {
			continue
		}

		return &models.Resolution{
			Software:       software,
			SoftwareID:     software.ID,
			SoftwareName:   software.Name,
			VersionName:    version.Name,
			Part:           part.Part,
			Size:           part.Size,
			Link:           part.Link,
			IsSplitArchive: version.IsSplitArchive(),
			TotalParts:     len(version.Parts),
		}, nil
	}

	return nil, apperrors.Wrap(fmt.Errorf("software %q part %d", softwareID, partNumber),
		apperrors.ErrPartNotFound.Code, apperrors.ErrPartNotFound.Message, apperrors.ErrPartNotFound.StatusCode)
}
