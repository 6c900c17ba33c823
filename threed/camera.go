// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	"cogentcore.org/core/math32"
)

// Camera is a perspective camera looking from Position at Target,
// projecting onto Viewport.
type Camera struct {

	// Viewport is the target region the camera projects onto.
	Viewport Viewport

	// Position is the eye position in world coordinates.
	Position math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// Up is the up direction.
	Up math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Near and Far are the clipping plane distances.
	Near, Far float32

	// View transforms world coordinates into camera coordinates.
	View math32.Matrix4 `display:"-"`

	// Projection transforms camera coordinates into clip coordinates.
	Projection math32.Matrix4 `display:"-"`
}

// NewPerspectiveCamera returns a new perspective [Camera] with its
// matrices computed. fov is the vertical field of view in degrees.
func NewPerspectiveCamera(vp Viewport, pos, target, up math32.Vector3, fov, near, far float32) *Camera {
	cm := &Camera{Viewport: vp, Position: pos, Target: target, Up: up, FOV: fov, Near: near, Far: far}
	cm.UpdateMatrix()
	return cm
}

// SetViewport sets the viewport and updates the projection aspect.
func (cm *Camera) SetViewport(vp Viewport) {
	cm.Viewport = vp
	cm.UpdateMatrix()
}

// UpdateMatrix recomputes the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(cm.Position, cm.Target, cm.Up))
	var cview math32.Matrix4
	cview.SetTransform(cm.Position, lookq, math32.Vec3(1, 1, 1))
	view, _ := cview.Inverse()
	cm.View.CopyFrom(view)
	cm.Projection.SetPerspective(cm.FOV, cm.Viewport.Aspect(), cm.Near, cm.Far)
}

// ViewProjection returns Projection * View.
func (cm *Camera) ViewProjection() math32.Matrix4 {
	var vp math32.Matrix4
	vp.MulMatrices(&cm.Projection, &cm.View)
	return vp
}
