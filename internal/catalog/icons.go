// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import "github.com/lazycatapps/downloadhub/internal/models"

// DefaultIcon is used for categories without a dedicated icon.
var DefaultIcon = models.Icon{Name: "Monitor", Gradient: "from-blue-500 to-purple-500"}

var categoryIcons = map[string]models.Icon{
	"general":     {Name: "Monitor", Gradient: "from-blue-500 to-cyan-500"},
	"graphic":     {Name: "Palette", Gradient: "from-pink-500 to-rose-500"},
	"development": {Name: "Code", Gradient: "from-green-500 to-emerald-500"},
	"security":    {Name: "Shield", Gradient: "from-red-500 to-orange-500"},
	"office":      {Name: "FileText", Gradient: "from-purple-500 to-violet-500"},
	"games":       {Name: "Gamepad2", Gradient: "from-yellow-500 to-amber-500"},
	"system":      {Name: "Settings", Gradient: "from-gray-500 to-slate-500"},
	"multimedia":  {Name: "Wrench", Gradient: "from-indigo-500 to-blue-500"},
	"utilities":   {Name: "Wrench", Gradient: "from-teal-500 to-cyan-500"},
}

// IconFor returns the icon for a category id. It is total: unknown ids get DefaultIcon.
func IconFor(categoryID string) models.Icon {
	if icon, ok := categoryIcons[categoryID]; ok {
		return icon
	}
	return DefaultIcon
}
